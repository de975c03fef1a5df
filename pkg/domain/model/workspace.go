package model

// WorkspaceState is a point-in-time copy of the presentation shell's state.
type WorkspaceState struct {
	Folder        string     `json:"folder"`
	ScanID        string     `json:"scan_id,omitempty"`
	Scanning      bool       `json:"scanning"`
	ClickTag      string     `json:"click_tag"`
	Creatives     []Creative `json:"creatives"`
	Status        string     `json:"status"`
	Error         string     `json:"error"`
	Step1Complete bool       `json:"step1_complete"`
	Step2Complete bool       `json:"step2_complete"`
}

// IsStep1Complete reports whether a folder is selected and it produced creatives.
func IsStep1Complete(folder string, result *ScanResult) bool {
	return folder != "" && result.Len() > 0
}

// IsStep2Complete reports whether a usable click tag has been entered.
func IsStep2Complete(clickTag string) bool {
	_, err := NormalizeClickTag(clickTag)
	return err == nil
}
