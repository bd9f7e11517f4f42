package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *EngineError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *EngineError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Layout and collection errors

func LayoutNotFound(path string) *EngineError {
	return New(CategoryLayout, SeverityFatal, "content root not found").
		WithContext("path", path)
}

func MissingPrimaryDocument(slug, lang, path string) *EngineError {
	return New(CategoryCollect, SeverityWarning, "slug folder has no primary document").
		WithContext("slug", slug).
		WithContext("lang", lang).
		WithContext("path", path)
}

func CollectFailed(lang string, cause error) *EngineError {
	return Wrap(cause, CategoryCollect, SeverityFatal, "legacy tree collection failed").
		WithContext("lang", lang)
}

// Migration errors

func StagingFailed(slug string, cause error) *EngineError {
	return Wrap(cause, CategoryStaging, SeverityFatal, "staging write failed").
		WithContext("slug", slug)
}

func DestructivePhaseFailed(phase, runID string, cause error) *EngineError {
	return Wrap(cause, CategoryDestructive, SeverityFatal, "destructive phase failed, manual recovery from backup may be required").
		WithContext("phase", phase).
		WithContext("run_id", runID)
}

func MigrationInProgress(markerPath string) *EngineError {
	return New(CategoryDestructive, SeverityFatal, "a previous migration left an in-progress marker").
		WithContext("marker", markerPath)
}

// Front-matter errors

func FrontMatterInvalid(path string, cause error) *EngineError {
	return Wrap(cause, CategoryFrontMatter, SeverityWarning, "front-matter could not be parsed").
		WithContext("path", path)
}
