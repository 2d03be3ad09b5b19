package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

var expandFuncs = template.FuncMap{
	"env": os.Getenv,
	"exec": func(line string) (string, error) {
		if strings.Contains(line, " | ") {
			out, err := exec.Command("sh", "-c", line).Output()
			return strings.TrimSpace(string(out)), err
		}

		fields := strings.Fields(line)
		if len(fields) < 1 {
			return "", errors.New("no command provided")
		}

		out, err := exec.Command(fields[0], fields[1:]...).Output()
		return strings.TrimSpace(string(out)), err
	},
}

// Expand executes value as a template with the env and exec functions
// available, e.g. "postgres://{{ env `PGUSER` }}@localhost/app".
func Expand(value string) (string, error) {
	if !strings.Contains(value, "{{") {
		return value, nil
	}

	tmpl, err := template.New("expand").Funcs(expandFuncs).Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", err
	}

	return out.String(), nil
}

// expandOrDefault returns value unchanged when it fails to expand.
func expandOrDefault(value string) string {
	ex, err := Expand(value)
	if err != nil {
		return value
	}
	return ex
}
