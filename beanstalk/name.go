package beanstalk

import "regexp"

// maxNameLen is the protocol limit on tube names.
const maxNameLen = 200

// nameRegex covers the characters the protocol allows in tube names. A
// hyphen is allowed anywhere but the first position.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9+/;.$_()][A-Za-z0-9+/;.$_()\-]*$`)

// checkName validates a tube name against the protocol rules.
func checkName(name string) error {
	switch {
	case name == "":
		return &NameError{Name: name, Reason: "empty"}
	case len(name) > maxNameLen:
		return &NameError{Name: name, Reason: "longer than 200 bytes"}
	case !nameRegex.MatchString(name):
		return &NameError{Name: name, Reason: "illegal character"}
	}
	return nil
}
