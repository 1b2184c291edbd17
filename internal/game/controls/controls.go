// Package controls maps key and mouse presses to game actions.
package controls

// Action is what a press asks the game to do.
type Action int

const (
	None Action = iota
	Quit
	Sample      // Take the next calibration sample
	Recalibrate // Discard the calibration and start over
	Trigger     // Push the sphere under the token
	Screenshot
)

// Keycodes for non-printable keys. Printable keys use their lowercase character.
const (
	KeyEscape     rune = 27
	KeyScreenshot rune = 0x40000045 // F12
)

// ResetKey together with shift restarts calibration.
const ResetKey = 'c'

func (a Action) String() string {
	switch a {
	case Quit:
		return "quit"
	case Sample:
		return "sample"
	case Recalibrate:
		return "recalibrate"
	case Trigger:
		return "trigger"
	case Screenshot:
		return "screenshot"
	default:
		return "none"
	}
}

// ForKey returns the action for a key press. Escape and F12 work in every
// mode. While calibrating every other key samples.
func ForKey(key rune, shift, calibrating bool) Action {
	switch {
	case key == KeyEscape:
		return Quit
	case key == KeyScreenshot:
		return Screenshot
	case calibrating:
		return Sample
	case shift && key == ResetKey:
		return Recalibrate
	default:
		return Trigger
	}
}

// ForClick returns the action for a left click, which acts like an ordinary key.
func ForClick(calibrating bool) Action {
	if calibrating {
		return Sample
	}
	return Trigger
}
