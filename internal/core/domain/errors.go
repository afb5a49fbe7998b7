package domain

import "go.trai.ch/zerr"

var (
	// ErrNoTargetsSpecified is returned when a run is requested without any target.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrUnknownTarget is returned when a target name has no descriptor.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrInvalidTarget is returned when a target descriptor is missing required fields.
	ErrInvalidTarget = zerr.New("invalid target descriptor")

	// ErrInvalidProject is returned when the project layout is missing required fields.
	ErrInvalidProject = zerr.New("invalid project layout")

	// ErrInvalidTransition is returned when the run state machine is asked for an illegal move.
	ErrInvalidTransition = zerr.New("invalid phase transition")

	// ErrRunFailed marks errors from a run that stopped at a failing step.
	ErrRunFailed = zerr.New("smoke run failed")

	// ErrUnsupportedConfigVersion is returned when a config file declares a version this build cannot read.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrDuplicateSource is returned when two workspace files would share a base name.
	ErrDuplicateSource = zerr.New("duplicate workspace file name")

	// ErrEmptyCommand is returned when an invocation has no command.
	ErrEmptyCommand = zerr.New("empty command")
)
