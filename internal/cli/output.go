package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/archboard/pkg/errors"
)

// appendOutput appends key=value to a CI step output file such as the one
// named by GITHUB_OUTPUT. Values containing newlines use the heredoc form.
func appendOutput(path, key, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open step output %s", path)
	}
	defer f.Close()

	line := fmt.Sprintf("%s=%s\n", key, value)
	if strings.ContainsAny(value, "\r\n") {
		line = fmt.Sprintf("%s<<ARCHBOARD_EOF\n%s\nARCHBOARD_EOF\n", key, value)
	}
	if _, err := f.WriteString(line); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write step output %s", path)
	}
	return nil
}
