package config

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/RevCBH/roomreport/internal/delivery"
	"github.com/RevCBH/roomreport/internal/device"
	"github.com/RevCBH/roomreport/internal/directory"
	"github.com/RevCBH/roomreport/internal/sequencer"
)

// Flow converts the dialog settings into the sequencer's configuration.
func (c *Config) Flow() (sequencer.Flow, error) {
	category, err := parseDuration("category.duration", c.Category.Duration)
	if err != nil {
		return sequencer.Flow{}, err
	}
	description, err := parseDuration("description.duration", c.Description.Duration)
	if err != nil {
		return sequencer.Flow{}, err
	}
	name, err := parseDuration("name.duration", c.Name.Duration)
	if err != nil {
		return sequencer.Flow{}, err
	}
	delay, err := parseDuration("name_prompt_delay", c.NamePromptDelay)
	if err != nil {
		return sequencer.Flow{}, err
	}

	return sequencer.Flow{
		PanelID: c.Panel.ID,
		Category: device.Prompt{
			FeedbackID: c.Category.FeedbackID,
			Title:      c.Category.Title,
			Text:       c.Category.Text,
			Options:    slices.Clone(c.Category.Options),
			Duration:   category,
		},
		Description: textInput(c.Description, description),
		Name:        textInput(c.Name, name),
		NameDelay:   delay,
		Policy:      sequencer.ActivationPolicy(c.ActivationPolicy),
	}, nil
}

// PanelDefinition returns the activation button.
func (c *Config) PanelDefinition() device.Panel {
	return device.Panel{
		ID:       c.Panel.ID,
		Name:     c.Panel.Name,
		Icon:     c.Panel.Icon,
		Color:    c.Panel.Color,
		Type:     c.Panel.Type,
		Location: c.Panel.Location,
	}
}

// Directory builds the location lookup.
func (c *Config) Directory() *directory.Directory {
	return directory.New(c.Locations)
}

// DeliveryConfig returns the settings for delivery.FromConfig.
func (c *Config) DeliveryConfig() delivery.Config {
	return delivery.Config{
		Backends: slices.Clone(c.Delivery.Backends),
		WebexURL: c.Webex.APIURL,
		Token:    c.Webex.Token,
	}
}

// Alert converts one alert setting.
func (a AlertConfig) Alert() (device.Alert, error) {
	d, err := parseDuration("alert duration", a.Duration)
	if err != nil {
		return device.Alert{}, err
	}
	return device.Alert{Title: a.Title, Text: a.Text, Duration: d}, nil
}

func textInput(c TextInputConfig, d time.Duration) device.TextInput {
	return device.TextInput{
		FeedbackID:  c.FeedbackID,
		Title:       c.Title,
		Text:        c.Text,
		Placeholder: c.Placeholder,
		Duration:    d,
	}
}

func parseDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
