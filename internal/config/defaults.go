package config

const (
	DefaultWebexAPIURL      = "https://webexapis.com/v1/messages"
	DefaultKeepAlive        = "30s"
	DefaultNamePromptDelay  = "600ms"
	DefaultActivationPolicy = "restart"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultServiceName      = "roomreport"
	DefaultAlertDuration    = "5s"
)

// DefaultCategoryOptions are the issue types offered in the first prompt.
var DefaultCategoryOptions = []string{
	"Room System Issue",
	"Facility issue",
	"Request Security",
	"Catering Request",
	"Share Feedback",
}

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			Insecure:  true,
			KeepAlive: DefaultKeepAlive,
		},
		Webex: WebexConfig{
			APIURL: DefaultWebexAPIURL,
		},
		Delivery: DeliveryConfig{
			Backends: []string{"webex"},
		},
		Panel: PanelConfig{
			ID:       "report-issue",
			Name:     "Report Issue",
			Icon:     "Info",
			Color:    "#FC5143",
			Type:     "Statusbar",
			Location: "HomeScreenAndCallControls",
		},
		Category: PromptConfig{
			FeedbackID: "issue-category",
			Title:      "Report issue in this room:",
			Text:       "What type of issue?",
			Options:    append([]string(nil), DefaultCategoryOptions...),
			Duration:   "20s",
		},
		Description: TextInputConfig{
			FeedbackID: "issue-comment",
			Title:      "Report issue step 2:",
			Text:       "Enter a short description of the issue",
			Duration:   "600s",
		},
		Name: TextInputConfig{
			FeedbackID: "issue-name",
			Title:      "Report issue step 3:",
			Text:       "Please enter your name",
			Duration:   "0s",
		},
		NamePromptDelay: DefaultNamePromptDelay,
		Alerts: AlertsConfig{
			Sent: AlertConfig{
				Title:    "Report sent",
				Text:     "Thank you for reporting the issue. We will address it as soon as possible.",
				Duration: DefaultAlertDuration,
			},
			Failed: AlertConfig{
				Title:    "Error",
				Text:     "Unable to send report. Invalid room name.",
				Duration: DefaultAlertDuration,
			},
			InProgress: AlertConfig{
				Title:    "Report in progress",
				Text:     "Finish or dismiss the current report first.",
				Duration: DefaultAlertDuration,
			},
		},
		ActivationPolicy: DefaultActivationPolicy,
		Locations:        map[string]string{},
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
		Telemetry: TelemetryConfig{
			ServiceName: DefaultServiceName,
		},
	}
}
