package behaviour

import "sort"

// Script is an authored scene: it stages the camera and schedules the
// sequences that play once its assets are in.
type Script interface {
	Name() string
	Start(stage *Stage) error
}

type ScriptConstructor func() Script

var scriptRegistry = make(map[string]ScriptConstructor)

func RegisterScript(name string, constructor ScriptConstructor) {
	scriptRegistry[name] = constructor
}

func GetAvailableScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CreateScript(name string) Script {
	if constructor, exists := scriptRegistry[name]; exists {
		return constructor()
	}
	return nil
}
