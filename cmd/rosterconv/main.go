// Command rosterconv converts the committee membership spreadsheet into
// the members.json roster consumed by the file directory source.
//
// The workbook layout is fixed: a header row whose second column reads
// "User", then one member per row with name, area, username and role in
// columns B through E. Rows without a username are skipped.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/communities-choice/portal-auth/internal/domain"
)

func main() {
	in := flag.String("in", "data/committee-members.xlsx", "path to the membership workbook")
	out := flag.String("out", "members.json", "path to write the roster JSON")
	flag.Parse()

	roster, err := convert(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rosterconv: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "rosterconv: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "rosterconv: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d members to %s\n", len(roster), *out)
}

func convert(path string) ([]domain.Profile, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	var rows [][]string
	for _, sheet := range wb.GetSheetList() {
		sheetRows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(sheetRows) > 0 {
			rows = sheetRows
			break
		}
	}
	if rows == nil {
		return nil, fmt.Errorf("no populated sheets in %s", path)
	}

	return parseRoster(rows)
}

func parseRoster(rows [][]string) ([]domain.Profile, error) {
	headerIdx := -1
	for i, row := range rows {
		if strings.EqualFold(strings.TrimSpace(cell(row, 1)), "user") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf(`header row with "User" not found`)
	}

	var roster []domain.Profile
	seen := make(map[string]bool)
	for _, row := range rows[headerIdx+1:] {
		username := strings.ToLower(strings.TrimSpace(cell(row, 3)))
		if username == "" {
			continue
		}
		if seen[username] {
			return nil, fmt.Errorf("duplicate username %q", username)
		}
		seen[username] = true

		role := domain.RoleMember
		if strings.Contains(strings.ToLower(cell(row, 4)), "admin") {
			role = domain.RoleAdmin
		}
		area := strings.TrimSpace(cell(row, 2))
		if area == "" {
			area = domain.AreaAll
		}

		roster = append(roster, domain.Profile{
			Username: username,
			Name:     strings.TrimSpace(cell(row, 1)),
			Area:     area,
			Role:     role,
		})
	}

	// The portal administrators must always be present, even when the
	// spreadsheet omits them.
	roster = ensureMember(roster, seen, "dwatkins", "Dan Watkins")
	roster = ensureMember(roster, seen, "tvaadmin", "TVA Admin")

	return roster, nil
}

func ensureMember(roster []domain.Profile, seen map[string]bool, username, name string) []domain.Profile {
	if seen[username] {
		return roster
	}
	seen[username] = true
	return append(roster, domain.Profile{
		Username: username,
		Name:     name,
		Area:     domain.AreaAll,
		Role:     domain.RoleAdmin,
	})
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
