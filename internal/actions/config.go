package actions

import (
	"fmt"

	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/usage"
)

// configure lists every preference with no key, prints one with a key,
// sets one with a key and a value, and removes one with --unset.
func configure(in *dispatchers.Input, deps Deps) error {
	key, hasKey := in.Argument("key")
	value, hasValue := in.Argument("value")

	if in.Flag("unset") {
		if !hasKey {
			return in.UsageError(usage.MissingArgument("key"))
		}
		if hasValue {
			return in.UsageError(usage.UnexpectedArgument(value))
		}
		return unsetConfig(key, deps)
	}

	switch {
	case !hasKey:
		return listConfig(deps)
	case !hasValue:
		return getConfig(key, deps)
	default:
		return setConfig(key, value, deps)
	}
}

func listConfig(deps Deps) error {
	values, err := deps.Config.GetAll()
	if err != nil {
		return err
	}

	for _, k := range domain.ConfigKeys {
		v := values[k.Name]
		if k.Hidden || (k.HideIfEmpty && v == "") {
			continue
		}
		_, _ = deps.Output.Printf("%s=%s\n", k.Name, v)
	}
	return nil
}

func getConfig(key string, deps Deps) error {
	if _, err := lookupKey(key); err != nil {
		return err
	}

	value, _ := deps.Config.Get(key)
	_, _ = deps.Output.Println(value)
	return nil
}

func setConfig(key, value string, deps Deps) error {
	k, err := lookupKey(key)
	if err != nil {
		return err
	}
	if err := k.Validate(value); err != nil {
		return err
	}

	if err := deps.Config.Set(key, value); err != nil {
		return err
	}
	_, _ = deps.Output.Printf("%s=%s\n", key, value)
	return nil
}

func unsetConfig(key string, deps Deps) error {
	k, err := lookupKey(key)
	if err != nil {
		return err
	}

	if err := deps.Config.Unset(key); err != nil {
		return err
	}
	if k.Default != "" {
		_, _ = deps.Output.Printf("unset %s (default: %s)\n", key, k.Default)
	} else {
		_, _ = deps.Output.Printf("unset %s\n", key)
	}
	return nil
}

func lookupKey(key string) (domain.ConfigKey, error) {
	if k, ok := domain.LookupConfigKey(key); ok {
		return k, nil
	}

	names := make([]string, 0, len(domain.ConfigKeys))
	for _, k := range domain.ConfigKeys {
		names = append(names, k.Name)
	}
	if similar := dispatchers.FindSimilarCommands(key, names, 1); len(similar) > 0 {
		return domain.ConfigKey{}, fmt.Errorf("unknown config key '%s' (did you mean '%s'?)", key, similar[0])
	}
	return domain.ConfigKey{}, fmt.Errorf("unknown config key '%s'", key)
}
