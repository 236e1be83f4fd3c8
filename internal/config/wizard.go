package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site title and owner.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Site.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Site.Title = title

	ownerPrompt := promptui.Prompt{
		Label: "Your name",
	}
	owner, err := ownerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	cfg.Site.Owner = owner

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port to listen on",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 3. External links.
	for _, label := range []string{"Source repository", "Professional profile"} {
		linkPrompt := promptui.Prompt{
			Label: label + " URL (leave blank to skip)",
		}
		u, err := linkPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToLower(label), err)
		}
		if u = strings.TrimSpace(u); u != "" {
			cfg.Links = append(cfg.Links, Link{Label: linkLabel(label), URL: u})
		}
	}

	// 4. Members listed by /api.
	membersPrompt := promptui.Prompt{
		Label:   "Members for /api (comma-separated, leave blank for none)",
		Default: strings.Join(cfg.Members, ", "),
	}
	membersStr, err := membersPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("members: %w", err)
	}
	cfg.Members = splitAndTrim(membersStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n <= 0 || n > 65535 {
		return fmt.Errorf("must be between 1 and 65535")
	}
	return nil
}

func linkLabel(prompt string) string {
	switch prompt {
	case "Source repository":
		return "Source"
	default:
		return "Profile"
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
