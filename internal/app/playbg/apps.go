package playbg

import (
	"github.com/telium/playbg/internal/pbx"
)

// Application names exposed to the host scripting engine.
const (
	AppStart  = "StartPlayBG"
	AppStop   = "StopPlayBG"
	AppResume = "ResumePlayBG"
)

// RegisterApplications registers the three playback applications with the
// host application registry.
func (c *Controller) RegisterApplications() {
	pbx.RegisterApp(pbx.App{
		Name:     AppStart,
		Synopsis: "Play sound in background",
		Description: "StartPlayBG(filename1&filename2&...&filenameN)\n" +
			"Start playing all files (in order) separated by '&' in background.\n" +
			"Starting while another background sound is set replaces it.\n" +
			"Use ResumePlayBG to resume at the right offset, StopPlayBG to unset.",
		Exec: c.Start,
	})
	pbx.RegisterApp(pbx.App{
		Name:        AppStop,
		Synopsis:    "Stop current sound in background",
		Description: "StopPlayBG()\nStop and unset the background sound set.",
		Exec: func(ch *pbx.Channel, _ string) error {
			c.Stop(ch)
			return nil
		},
	})
	pbx.RegisterApp(pbx.App{
		Name:        AppResume,
		Synopsis:    "Resume current sound set",
		Description: "ResumePlayBG()\nResume the background sound set at the right offset.",
		Exec: func(ch *pbx.Channel, _ string) error {
			return c.Resume(ch)
		},
	})
}

// UnregisterApplications removes the playback applications from the host
// application registry.
func (c *Controller) UnregisterApplications() {
	pbx.UnregisterApp(AppStart)
	pbx.UnregisterApp(AppStop)
	pbx.UnregisterApp(AppResume)
}
