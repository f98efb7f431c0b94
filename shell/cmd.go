package shell

import (
	"errors"
	"strings"

	"github.com/kballard/go-shellquote"
)

var (
	errNoData            = errors.New("no data in command")
	errWrongOptionSyntax = errors.New("option missing a value")
)

// shellcmd is a tokenized command line: the command word, its positional
// arguments, and -option value pairs. Quoting follows shell rules, so a
// whole FEN can be passed as one argument.
type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}

	cmd := fields[0]
	var args []string
	options := map[string]string{}

	idx := 1
	for idx < len(fields) {
		if strings.HasPrefix(fields[idx], "-") {
			if idx+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			options[strings.TrimPrefix(fields[idx], "-")] = fields[idx+1]
			idx += 2
			continue
		}
		args = append(args, fields[idx])
		idx++
	}

	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}
