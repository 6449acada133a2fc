package constructed

import (
	"fmt"
	"strings"

	"github.com/deepthought-solutions/structurizr-inventory/pkg/inventory"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultSeparator = "_"

// KeyedGroup places each host into a group derived from the value of
// one of its variables, e.g. key "technology" with prefix "tech".
type KeyedGroup struct {
	Key       string `mapstructure:"key"`
	Prefix    string `mapstructure:"prefix"`
	Separator string `mapstructure:"separator"`
}

// Settings holds the composite-variable rules applied over materialized
// hosts after the tree walk.
type Settings struct {
	Compose     map[string]string
	Groups      map[string]string
	KeyedGroups []KeyedGroup
	Strict      bool
}

// Apply runs the compose, groups and keyed_groups rules over every
// host. In non-strict mode unresolvable references are skipped; in
// strict mode they fail the parse.
func Apply(settings Settings, store inventory.Store, hostVars func(string) (map[string]interface{}, bool), hosts []string) error {
	for _, host := range hosts {
		vars, ok := hostVars(host)
		if !ok {
			continue
		}

		err := applyCompose(settings, store, host, vars)
		if err != nil {
			return err
		}

		err = applyGroups(settings, store, host, vars)
		if err != nil {
			return err
		}

		err = applyKeyedGroups(settings, store, host, vars)
		if err != nil {
			return err
		}
	}

	return nil
}

func applyCompose(settings Settings, store inventory.Store, host string, vars map[string]interface{}) error {
	for target, ref := range settings.Compose {
		value, ok := vars[ref]
		if !ok {
			if settings.Strict {
				return errors.Errorf("could not resolve %q composing %q for host %s", ref, target, host)
			}

			log.Debugf("skipping compose of %s for %s: %s not set", target, host, ref)

			continue
		}

		store.SetVariable(host, target, value)
		// Composed variables are visible to group conditions.
		vars[target] = value
	}

	return nil
}

func applyGroups(settings Settings, store inventory.Store, host string, vars map[string]interface{}) error {
	for groupName, condition := range settings.Groups {
		match, err := evalCondition(condition, vars)
		if err != nil {
			if settings.Strict {
				return errors.Wrapf(err, "evaluating group %q for host %s", groupName, host)
			}

			log.Debugf("skipping group %s for %s: %v", groupName, host, err)

			continue
		}

		if match {
			addToGroup(store, groupName, host)
		}
	}

	return nil
}

func applyKeyedGroups(settings Settings, store inventory.Store, host string, vars map[string]interface{}) error {
	for _, keyed := range settings.KeyedGroups {
		value, ok := vars[keyed.Key]
		if !ok {
			if settings.Strict {
				return errors.Errorf("could not resolve keyed group key %q for host %s", keyed.Key, host)
			}

			continue
		}

		separator := keyed.Separator
		if separator == "" {
			separator = defaultSeparator
		}

		for _, entry := range stringValues(value) {
			groupName := entry
			if keyed.Prefix != "" {
				groupName = keyed.Prefix + separator + entry
			}

			addToGroup(store, groupName, host)
		}
	}

	return nil
}

func addToGroup(store inventory.Store, name, host string) {
	group := inventory.SanitizeGroupName(name)
	if group == "" || group == host {
		return
	}

	store.AddGroup(group)
	store.AddChild(group, host)
}

// evalCondition evaluates the two supported condition forms:
// `var == 'literal'` and `'literal' in var`.
func evalCondition(condition string, vars map[string]interface{}) (bool, error) {
	if parts := strings.SplitN(condition, "==", 2); len(parts) == 2 {
		ref := strings.TrimSpace(parts[0])
		literal, ok := unquote(strings.TrimSpace(parts[1]))
		if !ok {
			return false, errors.Errorf("right side of %q is not a quoted literal", condition)
		}

		value, ok := vars[ref]
		if !ok {
			return false, errors.Errorf("variable %q is not defined", ref)
		}

		return fmt.Sprint(value) == literal, nil
	}

	if parts := strings.SplitN(condition, " in ", 2); len(parts) == 2 {
		literal, ok := unquote(strings.TrimSpace(parts[0]))
		if !ok {
			return false, errors.Errorf("left side of %q is not a quoted literal", condition)
		}

		ref := strings.TrimSpace(parts[1])

		value, ok := vars[ref]
		if !ok {
			return false, errors.Errorf("variable %q is not defined", ref)
		}

		for _, entry := range stringValues(value) {
			if entry == literal {
				return true, nil
			}
		}

		return false, nil
	}

	return false, errors.Errorf("unsupported condition %q", condition)
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}

	if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
		return s[1 : len(s)-1], true
	}

	return "", false
}

func stringValues(value interface{}) []string {
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []string:
		return typed
	case []interface{}:
		entries := make([]string, 0, len(typed))
		for _, entry := range typed {
			entries = append(entries, fmt.Sprint(entry))
		}

		return entries
	default:
		return []string{fmt.Sprint(value)}
	}
}
