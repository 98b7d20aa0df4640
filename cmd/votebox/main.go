// votebox is the voting-station client: voters verify their admission
// number, pick one candidate per position, pass the face and fingerprint
// gates and submit; administrators manage the catalog and session.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/udusdev/biovote/internal/api"
	"github.com/udusdev/biovote/internal/config"
	"github.com/udusdev/biovote/internal/logger"
	"github.com/udusdev/biovote/internal/store"
)

func main() {
	adminMode := flag.Bool("admin", false, "run the admin console instead of the voter flow")
	serverURL := flag.String("server", "", "override the e-voting server URL")
	resetGuard := flag.Bool("reset-guard", false, "wipe the on-device voted record (operator maintenance)")
	flag.Parse()

	cfg := config.Load()
	logger.Initialize(cfg.Log.Level)
	log := logger.Get()

	if *serverURL != "" {
		cfg.API.BaseURL = *serverURL
	}

	guard, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal("Failed to open voted store", "path", cfg.Store.Path, "error", err)
	}
	defer guard.Close()

	if *resetGuard {
		if err := guard.Reset(); err != nil {
			log.Fatal("Failed to reset voted store", "error", err)
		}
		fmt.Println("On-device voted record cleared.")
		return
	}

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout)
	in := bufio.NewReader(os.Stdin)

	if *adminMode {
		err = runAdmin(in, client)
	} else {
		err = runVoter(in, cfg, client, guard)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// prompt prints a label and reads one trimmed line.
func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func confirm(in *bufio.Reader, label string) bool {
	answer := strings.ToLower(prompt(in, label+" [y/N]: "))
	return answer == "y" || answer == "yes"
}
