package dsl

import (
	skema "github.com/reoring/skema"
	"github.com/reoring/skema/i18n"
)

// asIssues converts err into Issues, wrapping foreign errors as parse_error.
func asIssues(err error) skema.Issues {
	if iss, ok := skema.AsIssues(err); ok {
		return iss
	}
	return skema.RebaseIssues("/", err)
}

func requiredIssue() error {
	return skema.Issues{{
		Path:    "/",
		Code:    skema.CodeRequired,
		Message: i18n.T(skema.CodeRequired, nil),
	}}
}
