package constvars

// Validation messages keyed by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"email":         "must be a valid email",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"oneof":         "must be one of: %s",
	"datetime":      "must match the format %s",
	"clock_time":    "must be a valid time in HH:MM format",
	"not_past_slot": "must not be in the past",
}

// TagsWithParams marks tags whose message embeds the tag parameter.
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"datetime": true,
}
