// Package content holds the static text shown by every frontend.
package content

import (
	"fmt"

	"github.com/vovakirdan/stripsim/internal/sim"
)

// Window and panel titles.
const (
	WindowTitle = "Leica Drum Light Strip Simulator"
	PanelTitle  = "Leica Speedtest"
	AreaLabel   = "Shutter Test Area"
)

// Line is a line of text with an emphasis level.
type Line struct {
	Text    string
	Heading bool
}

// Controls lists the panel instructions.
var Controls = []Line{
	{Text: "Controls:", Heading: true},
	{Text: "- Hold UP to increase speed"},
	{Text: "- Hold DOWN to decrease speed"},
	{Text: "- Ctrl+UP / Ctrl+DOWN for steps of 5"},
	{Text: "- Click the button to Start/Stop"},
	{Text: "- H toggles help"},
	{Text: "- T switches theme"},
	{Text: "- M toggles multibeam"},
	{Text: "- Resize the window to adjust the area"},
	{Text: "- ESC exits immediately"},
}

// About describes the simulator in the panel.
var About = []Line{
	{Text: "About:", Heading: true},
	{Text: "Simulates the light strip used to test"},
	{Text: "Leica focal plane shutter speeds. Adjust"},
	{Text: "the speed until the camera records the"},
	{Text: "rough drum image shown in the help box."},
}

// Status returns the panel status lines for a snapshot.
func Status(snap sim.Snapshot) []Line {
	state := "Stopped"
	if snap.Sim.Running {
		state = "Active"
	}
	return []Line{
		{Text: fmt.Sprintf("Current Speed: %d px/frame", snap.Sim.Speed)},
		{Text: "Strip Status: " + state},
		{Text: "Theme: " + snap.Theme.String()},
		{Text: "Beam Mode: " + snap.Sim.Beam.String()},
		{Text: fmt.Sprintf("Refresh Rate: %d Hz", snap.RefreshRate)},
	}
}

// RatesHeading and RatesColumns title the recommended speeds table.
const RatesHeading = "Recommended Speeds:"

var RatesColumns = [2]string{"Refresh Rate", "Max px/frame"}

// RateRow formats one row of the recommended speeds table.
func RateRow(rate, max int) [2]string {
	return [2]string{fmt.Sprintf("%d Hz", rate), fmt.Sprintf("%d", max)}
}

// ToggleLabel returns the start/stop button caption.
func ToggleLabel(running bool) string {
	if running {
		return "Stop"
	}
	return "Start"
}

// Warning dialog text.
const (
	WarningTitle    = "Epilepsy Warning"
	WarningLead     = "Before you start:"
	AcknowledgeText = "I acknowledge the risks and wish to continue"
)

// WarningSections are the paragraphs of the warning dialog.
var WarningSections = [][]string{
	{
		"This application contains rapidly flashing lights and moving",
		"visual elements that may trigger seizures in individuals with",
		"photosensitive epilepsy.",
	},
	{"Please do not use this application if you:"},
	{
		"- Have a history of epilepsy or seizures",
		"- Are sensitive to flashing lights",
		"- Experience discomfort from rapid visual changes",
	},
	{
		"By continuing you acknowledge that you understand these",
		"risks and use this application at your own discretion.",
	},
	{
		"If you feel any discomfort while using the application",
		"press ESC to exit immediately and consult a physician.",
	},
}

// ContinueLabel returns the continue button caption.
func ContinueLabel(snap sim.Snapshot) string {
	if snap.Modal.Acknowledged && !snap.CanContinue {
		return fmt.Sprintf("Continue after %ds", snap.Remaining)
	}
	return "Continue"
}

// Speed popup text.
const (
	PopupTitle  = "Speed Warning"
	PopupLead   = "You have exceeded the recommended speed"
	IgnoreLabel = "Ignore"
)

// PopupLimit returns the popup line naming the limit.
func PopupLimit(snap sim.Snapshot) string {
	return fmt.Sprintf("Max for %dHz is %d px/frame", snap.RefreshRate, snap.Recommended)
}

// PopupBody explains why high speeds are unreliable.
var PopupBody = []string{
	"Speed too fast for effective testing. The display refresh",
	"cannot keep up with the moving lines, which then appear",
	"still and will not register an image usable for testing.",
	"Continue at your own risk.",
}

// Help overlay text.
const (
	HelpTitle   = "Leica M3 Shutter Speed Testing - Figure 19.1"
	FigureTitle = "Figure 19.1 - Drum Test Images at Different Shutter Speeds"
	HelpFooter  = "Press H again to close this help window"
)

// HelpBody is the explanatory text of the help overlay.
var HelpBody = []Line{
	{Text: "Understanding Focal Plane Shutter Testing:", Heading: true},
	{Text: "Drum test images show diagonal stripes photographed at different speeds."},
	{Text: "Each image shows the effective slit the shutter moves across the film."},
	{Text: "Faster speeds (1/1000) create narrower slits in the exposure pattern."},
	{Text: "Slower speeds (1/250) create wider slits and let more light through."},
	{Text: "The moving light strip represents the test pattern motion."},
	{Text: ""},
	{Text: "From the Leica M3 Service Manual:", Heading: true},
	{Text: "The image of the slit must be slightly wider at the lower edge"},
	{Text: "of the frame than at the top. Increasing the tension of the spring"},
	{Text: "roller of the first shutter blind widens the slit image."},
}

// FigureSpeed describes one panel of the generated drum figure.
type FigureSpeed struct {
	Label string
	Slit  int // Slit width in px
	Shade uint8
}

// FigureSpeeds are the panels of the generated figure, slowest first.
var FigureSpeeds = []FigureSpeed{
	{Label: "1/250", Slit: 30, Shade: 180},
	{Label: "1/500", Slit: 22, Shade: 140},
	{Label: "1/1000", Slit: 16, Shade: 100},
}

// FigureCaption explains the figure.
var FigureCaption = []string{
	"The drum images show the required pattern for proper shutter operation.",
	"Faster speeds create narrower effective slit widths.",
	"The diagonal pattern visualizes shutter curtain timing.",
}
