package pbx

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrUnknownApp is returned when looking up an application that was never
// registered.
var ErrUnknownApp = errors.New("unknown application")

// AppFunc executes a scripting-engine application against a channel with a
// raw argument string.
type AppFunc func(ch *Channel, arg string) error

// App is a named application exposed to the host scripting engine.
type App struct {
	Name        string
	Synopsis    string
	Description string
	Exec        AppFunc
}

// appRegistry holds registered applications by name.
var appRegistry = make(map[string]App)

// RegisterApp registers an application under its name.
func RegisterApp(a App) {
	appRegistry[a.Name] = a
}

// UnregisterApp removes an application by name.
func UnregisterApp(name string) {
	delete(appRegistry, name)
}

// LookupApp returns the application registered under name.
func LookupApp(name string) (App, error) {
	a, ok := appRegistry[name]
	if !ok {
		return App{}, errors.Wrapf(ErrUnknownApp, "%s", name)
	}
	return a, nil
}

// RegisteredApps returns all registered applications sorted by name.
func RegisteredApps() []App {
	names := make([]string, 0, len(appRegistry))
	for name := range appRegistry {
		names = append(names, name)
	}
	sort.Strings(names)

	apps := make([]App, 0, len(names))
	for _, name := range names {
		apps = append(apps, appRegistry[name])
	}
	return apps
}
