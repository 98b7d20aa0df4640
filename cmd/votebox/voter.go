package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/udusdev/biovote/internal/api"
	"github.com/udusdev/biovote/internal/config"
	"github.com/udusdev/biovote/internal/domain/election"
	"github.com/udusdev/biovote/internal/store"
	"github.com/udusdev/biovote/internal/validation"
	"github.com/udusdev/biovote/internal/verify"
	"github.com/udusdev/biovote/internal/voting"
)

func runVoter(in *bufio.Reader, cfg *config.Config, client *api.Client, guard *store.VotedStore) error {
	ctx := context.Background()

	fmt.Println("=== UDUS E-Voting System ===")
	fmt.Println("Student Verification")
	fmt.Println()

	userID := prompt(in, "Enter your admission number: ")
	if err := validation.ValidateAdmissionNumber(userID); err != nil {
		return err
	}

	gates := verify.NewSequence(
		verify.StubFace{CameraAvailable: cfg.Verify.CameraAvailable},
		promptFingerprint{in: in, enrolled: cfg.Verify.FingerprintEnrolled},
	)
	svc := voting.NewService(client, guard, gates)

	if err := svc.CheckVoter(userID); err != nil {
		if errors.Is(err, voting.ErrAlreadyVoted) {
			fmt.Println("You have already cast your vote!")
			return nil
		}
		return err
	}

	session, err := client.ActiveSession(ctx)
	if err != nil {
		return fmt.Errorf("load session state: %w", err)
	}
	if !session.Active {
		fmt.Println("Voting is currently closed. Please come back when a session is open.")
		return nil
	}

	candidates, err := client.ListCandidates(ctx)
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}
	if len(candidates) == 0 {
		fmt.Println("No candidates available")
		return nil
	}

	selection := runSelection(in, candidates)
	if selection.Count() == 0 {
		fmt.Println("Please select at least one candidate to vote for.")
		return nil
	}

	fmt.Println()
	fmt.Println("Face Verification: align your face within the frame.")
	prompt(in, "Press Enter to capture... ")

	if err := svc.Submit(ctx, userID, selection); err != nil {
		switch {
		case errors.Is(err, verify.ErrUnavailable):
			fmt.Println("Verification blocked:", err)
			fmt.Println("Check the station's camera and fingerprint enrollment, then try again.")
		case errors.Is(err, verify.ErrNoMatch):
			fmt.Println("Authentication failed. Your selections are kept; you may retry.")
		default:
			fmt.Println("Submission failed:", err)
			fmt.Println("Nothing was recorded; you may retry.")
		}
		return nil
	}

	fmt.Println()
	fmt.Println("Vote Successful!")
	fmt.Println("You have successfully cast your vote.")

	if confirm(in, "Show current results?") {
		return showResults(ctx, client)
	}
	return nil
}

// runSelection walks the grouped catalog and lets the voter pick one
// candidate per position, re-picking as often as they like.
func runSelection(in *bufio.Reader, candidates []election.Candidate) *election.SelectionMap {
	groups, names := election.GroupByPosition(candidates)
	selection := election.NewSelectionMap()

	// Stable numbering across the whole ballot.
	var indexed []election.Candidate
	fmt.Println()
	fmt.Println("Select one candidate per position.")
	for _, name := range names {
		fmt.Printf("\n%s\n", name)
		for _, c := range groups[name] {
			indexed = append(indexed, c)
			fmt.Printf("  %2d) %s — %s\n", len(indexed), c.Name, c.Department)
		}
	}

	for {
		answer := prompt(in, "\nCandidate number (or 'done'): ")
		if answer == "done" || answer == "" {
			break
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(indexed) {
			fmt.Println("Enter a number from the list above.")
			continue
		}
		chosen := indexed[n-1]
		selection.Select(chosen)
		fmt.Printf("Selected %s for %s (%d position(s) chosen)\n",
			chosen.Name, chosen.PositionName(), selection.Count())
	}

	return selection
}

// showResults prints per-position tallies with vote shares.
func showResults(ctx context.Context, client *api.Client) error {
	candidates, err := client.ListCandidates(ctx)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	groups, names := election.GroupByPosition(candidates)

	fmt.Println()
	fmt.Println("=== Election Results ===")
	for _, name := range names {
		group := groups[name]
		total := election.TotalVotes(group)
		fmt.Printf("\n%s (total votes: %d)\n", name, total)
		for _, c := range group {
			fmt.Printf("  %-30s %3d votes  %5.1f%%\n",
				c.Name, c.Votes, election.Percentage(c.Votes, total))
		}
	}
	return nil
}
