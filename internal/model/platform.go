package model

import "fmt"

// Platform is a social network a post can be published to.
type Platform string

const (
	Facebook Platform = "facebook"
	LinkedIn Platform = "linkedin"
	Twitter  Platform = "twitter"
)

var platformLabels = map[Platform]string{
	Facebook: "Facebook",
	LinkedIn: "LinkedIn",
	Twitter:  "Twitter",
}

// Platforms returns every supported platform in display order.
func Platforms() []Platform {
	return []Platform{Facebook, LinkedIn, Twitter}
}

func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if _, ok := platformLabels[p]; !ok {
		return "", fmt.Errorf("unknown platform: %q", s)
	}
	return p, nil
}

func (p Platform) Label() string {
	if label, ok := platformLabels[p]; ok {
		return label
	}
	return string(p)
}

func (p Platform) String() string {
	return string(p)
}
