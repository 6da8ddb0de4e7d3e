package calendar

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/dmitrijs2005/coffeechat/internal/logging"
)

// launchBrowser tries the common openers in order and falls back to
// printing the URL when none of them starts.
func launchBrowser(url string, logger logging.Logger) {
	attempts := [][]string{
		{"xdg-open", url},
		{"open", url},
		{"cmd.exe", "/c", "start", url},
	}
	for _, args := range attempts {
		if err := exec.Command(args[0], args[1:]...).Start(); err == nil {
			return
		}
		logger.Debug(context.Background(), "browser opener failed", "command", args[0])
	}
	fmt.Println("Please open this URL in your browser:")
	fmt.Println(url)
}
