package device

import (
	"encoding/xml"
	"fmt"
)

// Panel is a UI extension button placed on the device's home screen.
type Panel struct {
	ID       string
	Name     string
	Icon     string
	Color    string
	Type     string // Statusbar, Home, ...
	Location string // HomeScreenAndCallControls, ...
}

type extensionsXML struct {
	XMLName xml.Name `xml:"Extensions"`
	Version string   `xml:"Version"`
	Panel   panelXML `xml:"Panel"`
}

type panelXML struct {
	PanelID      string `xml:"PanelId"`
	Origin       string `xml:"Origin"`
	Type         string `xml:"Type"`
	Location     string `xml:"Location"`
	Icon         string `xml:"Icon"`
	Color        string `xml:"Color"`
	Name         string `xml:"Name"`
	ActivityType string `xml:"ActivityType"`
}

// XML renders the panel as the extensions document the device expects on
// Panel Save.
func (p Panel) XML() (string, error) {
	doc := extensionsXML{
		Version: "1.9",
		Panel: panelXML{
			PanelID:      p.ID,
			Origin:       "local",
			Type:         p.Type,
			Location:     p.Location,
			Icon:         p.Icon,
			Color:        p.Color,
			Name:         p.Name,
			ActivityType: "Custom",
		},
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal panel %s: %w", p.ID, err)
	}
	return string(out), nil
}
