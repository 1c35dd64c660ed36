package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/sadopc/fitlog/internal/store"
)

// ToCSV writes the day range as one row per record. Workouts and meals
// share the file; the Kind column tells them apart and the unused columns
// stay empty.
func ToCSV(days []store.DayRecords, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Kind", "Name", "Category", "Sets", "Reps", "Calories", "Protein", "Carbs", "Fats"}); err != nil {
		return err
	}

	for _, day := range days {
		for _, wk := range day.Workouts {
			row := []string{
				day.Date,
				"workout",
				wk.Name,
				wk.Category,
				wk.Sets,
				wk.Reps,
				"", "", "", "",
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		for _, m := range day.Meals {
			row := []string{
				day.Date,
				"meal",
				m.Name,
				string(m.Type),
				"", "",
				formatMacro(m.Calories),
				formatMacro(m.Protein),
				formatMacro(m.Carbs),
				formatMacro(m.Fats),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func formatMacro(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
