package letterboxd

import (
	"strings"
	"time"

	"jellyboxd/internal/config"
)

// State is a stage of the remote import workflow.
type State string

const (
	StateUnauthenticated  State = "unauthenticated"
	StateAuthenticated    State = "authenticated"
	StateFileSelected     State = "file_selected"
	StateMappingConfirmed State = "mapping_confirmed"
	StateImportTriggered  State = "import_triggered"
	StateCompleted        State = "completed"
)

// Policy decides what a step's failure means for the run.
type Policy int

const (
	// PolicyHard aborts the run when the step fails or times out.
	PolicyHard Policy = iota
	// PolicyAdvisory logs the failure, applies the step's fallback, and continues.
	PolicyAdvisory
)

func (p Policy) String() string {
	switch p {
	case PolicyHard:
		return "hard"
	case PolicyAdvisory:
		return "advisory"
	default:
		return "unknown"
	}
}

// Fallback is the heuristic applied when an advisory step does not succeed.
type Fallback int

const (
	FallbackNone Fallback = iota
	// FallbackCheckURL inspects the current location: still on the import
	// page counts as success, anywhere else is logged for manual inspection.
	FallbackCheckURL
)

// StepKind enumerates the browser primitives a step can use.
type StepKind int

const (
	StepNavigate StepKind = iota
	StepFill
	StepClick
	StepWait
	StepChooseFile
)

func (k StepKind) String() string {
	switch k {
	case StepNavigate:
		return "navigate"
	case StepFill:
		return "fill"
	case StepClick:
		return "click"
	case StepWait:
		return "wait"
	case StepChooseFile:
		return "choose_file"
	default:
		return "unknown"
	}
}

// Step is one bounded browser interaction.
type Step struct {
	Name     string
	Kind     StepKind
	URL      string
	Target   Locator
	Value    string
	Secret   bool
	Timeout  time.Duration
	Policy   Policy
	Fallback Fallback
}

// Transition moves the workflow from one state to the next by running Steps in order.
type Transition struct {
	From  State
	To    State
	Steps []Step
}

// Page paths and selectors of the Letterboxd import flow.
const (
	signInPath = "/sign-in/"
	importPath = "/import/"

	selUsername         = "#field-username"
	selPassword         = "#field-password"
	selSubmit           = `button[type="submit"]`
	selLoggedIn         = "body.logged-in"
	selUploadAffordance = ".select-file-button, .upload-zone, .button-green"
	selSubmitMatched    = "a.submit-matched-films"

	uploadTriggerText = "SELECT A FILE"
	summaryHeading    = "Import summary"
)

// Credentials authenticate the Letterboxd account.
type Credentials struct {
	Username string
	Password string
}

// Settings holds the target site and the bound of every wait.
type Settings struct {
	BaseURL                 string
	Headless                bool
	BrowserPath             string
	NavigationTimeout       time.Duration
	LoginTimeout            time.Duration
	UploadAffordanceTimeout time.Duration
	MappingTimeout          time.Duration
	CompletionTimeout       time.Duration
}

// SettingsFromConfig extracts the importer settings from the [letterboxd] section.
func SettingsFromConfig(cfg *config.Config) Settings {
	lb := cfg.Letterboxd
	return Settings{
		BaseURL:                 lb.BaseURL,
		Headless:                lb.Headless,
		BrowserPath:             lb.BrowserPath,
		NavigationTimeout:       lb.Timeouts.NavigationTimeout(),
		LoginTimeout:            lb.Timeouts.LoginTimeout(),
		UploadAffordanceTimeout: lb.Timeouts.UploadAffordanceTimeout(),
		MappingTimeout:          lb.Timeouts.MappingTimeout(),
		CompletionTimeout:       lb.Timeouts.CompletionTimeout(),
	}
}

// DefaultSettings returns the settings of the built-in config defaults.
func DefaultSettings() Settings {
	cfg := config.Default()
	return SettingsFromConfig(&cfg)
}

func (s Settings) pageURL(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + path
}

// Plan returns the full transition sequence for importing csvPath.
func Plan(s Settings, creds Credentials, csvPath string) []Transition {
	nav := s.NavigationTimeout
	return []Transition{
		{
			From: StateUnauthenticated,
			To:   StateAuthenticated,
			Steps: []Step{
				{Name: "open sign-in page", Kind: StepNavigate, URL: s.pageURL(signInPath), Timeout: nav},
				{Name: "enter username", Kind: StepFill, Target: CSS(selUsername), Value: creds.Username, Timeout: nav},
				{Name: "enter password", Kind: StepFill, Target: CSS(selPassword), Value: creds.Password, Secret: true, Timeout: nav},
				{Name: "submit sign-in form", Kind: StepClick, Target: CSS(selSubmit), Timeout: nav},
				{Name: "wait for logged-in session", Kind: StepWait, Target: CSS(selLoggedIn), Timeout: s.LoginTimeout},
			},
		},
		{
			From: StateAuthenticated,
			To:   StateFileSelected,
			Steps: []Step{
				{Name: "open import page", Kind: StepNavigate, URL: s.pageURL(importPath), Timeout: nav},
				{Name: "wait for upload button", Kind: StepWait, Target: CSS(selUploadAffordance), Timeout: s.UploadAffordanceTimeout, Policy: PolicyAdvisory},
				{Name: "select interchange file", Kind: StepChooseFile, Target: TextIn("", uploadTriggerText), Value: csvPath, Timeout: nav},
			},
		},
		{
			From: StateFileSelected,
			To:   StateMappingConfirmed,
			Steps: []Step{
				{Name: "wait for film mapping", Kind: StepWait, Target: CSS(selSubmitMatched), Timeout: s.MappingTimeout},
			},
		},
		{
			From: StateMappingConfirmed,
			To:   StateImportTriggered,
			Steps: []Step{
				{Name: "submit matched films", Kind: StepClick, Target: CSS(selSubmitMatched), Timeout: nav},
			},
		},
		{
			From: StateImportTriggered,
			To:   StateCompleted,
			Steps: []Step{
				{Name: "wait for import summary", Kind: StepWait, Target: TextIn("h1", summaryHeading), Timeout: s.CompletionTimeout, Policy: PolicyAdvisory, Fallback: FallbackCheckURL},
			},
		},
	}
}

// onImportPage reports whether a location is still within the import flow.
func onImportPage(location string) bool {
	return strings.Contains(location, strings.TrimSuffix(importPath, "/"))
}
