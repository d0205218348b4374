package services

import "context"

// RunInfo is the correlation data carried through one sync run.
type RunInfo struct {
	RunID string
	Stage string
}

type runInfoKey struct{}

func runInfo(ctx context.Context) RunInfo {
	if ctx == nil {
		return RunInfo{}
	}
	info, _ := ctx.Value(runInfoKey{}).(RunInfo)
	return info
}

// RunInfoFromContext returns the run annotations stamped on ctx.
func RunInfoFromContext(ctx context.Context) RunInfo {
	return runInfo(ctx)
}

// WithRunID annotates context with the run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	info := runInfo(ctx)
	info.RunID = id
	return context.WithValue(ctx, runInfoKey{}, info)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id := runInfo(ctx).RunID
	return id, id != ""
}

// WithStage annotates context with the import state being entered. The run
// id, if any, is kept.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	info := runInfo(ctx)
	info.Stage = stage
	return context.WithValue(ctx, runInfoKey{}, info)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	stage := runInfo(ctx).Stage
	return stage, stage != ""
}
