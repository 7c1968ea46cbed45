package config

import (
	"fmt"
	"strings"
)

// =============================================================================
// REQUESTER PROFILE
// =============================================================================

// ClubType selects between the built-in Comet Robotics setup and any other
// student organization.
type ClubType string

const (
	ClubCometRobotics ClubType = "comet-robotics"
	ClubOther         ClubType = "other"
)

// CometRoboticsName is the organization name used for ClubCometRobotics.
const CometRoboticsName = "Comet Robotics"

// Profile identifies who is ordering and for which organization.
type Profile struct {
	User User `yaml:"user"`
	Club Club `yaml:"club"`
}

// User is the person submitting orders.
type User struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	NetID     string `yaml:"net_id"`
}

// FullName returns "First Last", skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// Club is the ordering organization.
type Club struct {
	Type ClubType `yaml:"type"`

	// Name is only read for ClubOther.
	Name string `yaml:"name"`

	Advisor Advisor `yaml:"advisor"`
}

// Advisor is the organization's faculty advisor.
type Advisor struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// OrgName returns the organization name printed on purchase forms.
func (c Club) OrgName() string {
	if c.Type == ClubCometRobotics {
		return CometRoboticsName
	}
	return strings.TrimSpace(c.Name)
}

// =============================================================================
// PROJECT PRESETS
// =============================================================================

// Project is a selectable project preset.
type Project struct {
	// Key is the short name used on the command line, e.g. "Sumo".
	Key string `yaml:"key"`

	// DisplayName is printed on forms and used in file names.
	DisplayName string `yaml:"display_name"`

	// Justification overrides the generated project justification.
	Justification string `yaml:"justification,omitempty"`
}

// CometRoboticsProjects returns the built-in Comet Robotics presets.
func CometRoboticsProjects() []Project {
	return []Project{
		{Key: "General", DisplayName: "General"},
		{Key: "Marketing", DisplayName: "Marketing"},
		{Key: "Full Combat", DisplayName: "Full Combat Robots (Ants, Beetles, etc.)"},
		{Key: "Plant", DisplayName: "Plant Combat Robots"},
		{Key: "Sumo", DisplayName: "SumoBots"},
		{Key: "VexU", DisplayName: "VEX U"},
		{Key: "ChessBots", DisplayName: "ChessBots"},
		{Key: "SRP", DisplayName: "Solis Rover Project"},
	}
}

// FindProject looks a preset up by key, ignoring case. A key that matches no
// preset is an error listing the known keys.
func (c *MainConfig) FindProject(key string) (Project, error) {
	keys := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		if strings.EqualFold(p.Key, strings.TrimSpace(key)) {
			return p, nil
		}
		keys = append(keys, p.Key)
	}
	return Project{}, fmt.Errorf("unknown project %q (known: %s)", key, strings.Join(keys, ", "))
}

// Name returns the display name, falling back to the key.
func (p Project) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Key
}

// =============================================================================
// BUSINESS JUSTIFICATION
// =============================================================================

// JustificationMode decides how a typed-in justification combines with the
// project justification.
type JustificationMode string

const (
	JustificationReplace JustificationMode = "replace"
	JustificationAppend  JustificationMode = "append"
)

// ProjectJustification is the generated justification for a project.
func (p Project) ProjectJustification() string {
	if p.Justification != "" {
		return p.Justification
	}
	return fmt.Sprintf("These parts are needed for the %s team to continue research and development on their project.", p.Name())
}

// ResolveJustification combines a project's justification with a typed-in
// one.
//
// PARAMETERS:
//   - project: The selected preset.
//   - typed: The user's justification. Empty keeps the project justification.
//   - mode: Replace uses typed alone; append adds it after a blank line.
//
// RETURNS:
//   - The business justification for the purchase form.
func ResolveJustification(project Project, typed string, mode JustificationMode) string {
	base := project.ProjectJustification()
	typed = strings.TrimSpace(typed)
	if typed == "" {
		return base
	}
	if mode == JustificationAppend {
		return base + "\n\n" + typed
	}
	return typed
}
