package main

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/udusdev/biovote/internal/api"
	"github.com/udusdev/biovote/internal/domain/election"
	"github.com/udusdev/biovote/internal/validation"
)

func runAdmin(in *bufio.Reader, client *api.Client) error {
	ctx := context.Background()

	fmt.Println("=== UDUS E-Voting Admin ===")
	if err := adminLogin(ctx, in, client); err != nil {
		return err
	}

	for {
		fmt.Println()
		fmt.Println("1) List positions     2) Add position")
		fmt.Println("3) List candidates    4) Add candidate")
		fmt.Println("5) Clear candidates   6) Start session")
		fmt.Println("7) End session        8) Session status")
		fmt.Println("9) Results            0) Exit")

		choice := prompt(in, "> ")
		if choice == "0" || choice == "exit" {
			return nil
		}

		// The token is the credential for every mutation; re-login when
		// it lapses instead of surfacing opaque 401s.
		if client.TokenExpired(time.Now()) {
			fmt.Println("Admin session expired; please log in again.")
			if err := adminLogin(ctx, in, client); err != nil {
				return err
			}
		}

		if err := adminAction(ctx, in, client, choice); err != nil {
			fmt.Println("Error:", err)
		}
	}
}

func adminLogin(ctx context.Context, in *bufio.Reader, client *api.Client) error {
	for attempts := 0; attempts < 3; attempts++ {
		username := prompt(in, "Username: ")
		password := prompt(in, "Password: ")
		if username == "" || password == "" {
			fmt.Println("Please enter username and password")
			continue
		}

		if _, err := client.AdminLogin(ctx, username, password); err != nil {
			fmt.Println("Login failed:", err)
			continue
		}
		return nil
	}
	return fmt.Errorf("too many failed login attempts")
}

func adminAction(ctx context.Context, in *bufio.Reader, client *api.Client, choice string) error {
	switch choice {
	case "1":
		positions, err := client.ListPositions(ctx)
		if err != nil {
			return err
		}
		if len(positions) == 0 {
			fmt.Println("No positions yet.")
		}
		for _, p := range positions {
			fmt.Printf("  %s  (%s)\n", p.Name, p.ID)
		}

	case "2":
		name := prompt(in, "Position name: ")
		if err := validation.ValidatePositionName(name); err != nil {
			return err
		}
		if err := client.AddPosition(ctx, name); err != nil {
			return err
		}
		fmt.Println("Position added")
		return refreshCatalog(ctx, client)

	case "3":
		candidates, err := client.ListCandidates(ctx)
		if err != nil {
			return err
		}
		groups, names := election.GroupByPosition(candidates)
		if len(names) == 0 {
			fmt.Println("No candidates yet.")
		}
		for _, name := range names {
			fmt.Printf("%s\n", name)
			for _, c := range groups[name] {
				fmt.Printf("  %s — %s\n", c.Name, c.Department)
			}
		}

	case "4":
		positions, err := client.ListPositions(ctx)
		if err != nil {
			return err
		}
		if len(positions) == 0 {
			return fmt.Errorf("add a position first")
		}
		for i, p := range positions {
			fmt.Printf("  %d) %s\n", i+1, p.Name)
		}
		idx := prompt(in, "Position number: ")
		pos, err := pickPosition(positions, idx)
		if err != nil {
			return err
		}
		name := prompt(in, "Candidate name: ")
		if err := validation.ValidateCandidateName(name); err != nil {
			return err
		}
		department := prompt(in, "Department: ")
		if err := validation.ValidateRequired(department, "department"); err != nil {
			return err
		}
		if err := client.AddCandidate(ctx, name, department, pos.ID); err != nil {
			return err
		}
		fmt.Println("Candidate added")
		return refreshCatalog(ctx, client)

	case "5":
		if !confirm(in, "Remove every candidate?") {
			return nil
		}
		if err := client.ClearCandidates(ctx); err != nil {
			return err
		}
		fmt.Println("Candidates cleared")
		return refreshCatalog(ctx, client)

	case "6":
		name := prompt(in, "Session name: ")
		if err := validation.ValidateRequired(name, "session name"); err != nil {
			return err
		}
		if err := client.StartSession(ctx, name); err != nil {
			return err
		}
		fmt.Println("Session started")

	case "7":
		if err := client.EndSession(ctx); err != nil {
			return err
		}
		fmt.Println("Session ended")

	case "8":
		session, err := client.ActiveSession(ctx)
		if err != nil {
			return err
		}
		if session.Active {
			fmt.Printf("Active session: %s\n", session.Name)
		} else {
			fmt.Println("No active session")
		}

	case "9":
		return showResults(ctx, client)

	default:
		fmt.Println("Unknown choice")
	}
	return nil
}

func pickPosition(positions []election.Position, answer string) (election.Position, error) {
	for i, p := range positions {
		if answer == fmt.Sprintf("%d", i+1) {
			return p, nil
		}
	}
	return election.Position{}, fmt.Errorf("invalid position number")
}

// refreshCatalog refetches the catalog snapshot after a mutation so the
// console always shows what the server now holds.
func refreshCatalog(ctx context.Context, client *api.Client) error {
	positions, err := client.ListPositions(ctx)
	if err != nil {
		return err
	}
	candidates, err := client.ListCandidates(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog: %d position(s), %d candidate(s)\n", len(positions), len(candidates))
	return nil
}
