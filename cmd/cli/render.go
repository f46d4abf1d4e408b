package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/limaJavier/courseplan/pkg/scheduler"
	"github.com/samber/lo"
)

// Rows of the term grid are one hour apart
const timeIncrement = 60

var (
	weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	missedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	slotColors  = []lipgloss.Color{"#5B8DEF", "#FF6B6B", "#F7B801", "#4CAF50", "#B388EB"}
)

type sectionOutput struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type courseOutput struct {
	Name     string          `json:"name"`
	Sections []sectionOutput `json:"sections"`
}

type termOutput struct {
	Index   int            `json:"index"`
	Type    string         `json:"type"`
	Courses []courseOutput `json:"courses"`
}

type scheduleOutput struct {
	Degree              string       `json:"degree"`
	StartingTerm        string       `json:"startingTerm"`
	SlotsPerTerm        int          `json:"slotsPerTerm"`
	Count               int          `json:"count"`
	Terms               []termOutput `json:"terms"`
	MissedOpportunities []string     `json:"missedOpportunities"`
}

func buildOutput(schedule *scheduler.Schedule, degree *model.Course) scheduleOutput {
	return scheduleOutput{
		Degree:       degree.Name(),
		StartingTerm: schedule.StartingTerm().String(),
		SlotsPerTerm: schedule.SlotsPerTerm(),
		Count:        schedule.Count(),
		Terms: lo.Map(schedule.Terms(), func(entries []scheduler.Entry, index int) termOutput {
			return termOutput{
				Index: index,
				Type:  schedule.TermType(index).String(),
				Courses: lo.Map(entries, func(entry scheduler.Entry, _ int) courseOutput {
					return courseOutput{
						Name: entry.Course.Name(),
						Sections: lo.Map(entry.Offering.TimeSlots, func(slot model.TimeSlot, _ int) sectionOutput {
							return sectionOutput{Day: slot.Day.String(), Start: slot.Start.String(), End: slot.End.String()}
						}),
					}
				}),
			}
		}),
		MissedOpportunities: schedule.MissedOpportunities(),
	}
}

func renderJson(schedule *scheduler.Schedule, degree *model.Course) (string, error) {
	bytes, err := json.MarshalIndent(buildOutput(schedule, degree), "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// renderTable draws one weekly grid per term with a row per hour of the daily window
func renderTable(schedule *scheduler.Schedule, degree *model.Course) string {
	blocks := []string{
		titleStyle.Render(fmt.Sprintf("%v: %v courses over %v terms", degree.Name(), schedule.Count(), schedule.TermCount())),
	}

	for index, entries := range schedule.Terms() {
		if len(entries) == 0 {
			continue
		}

		rows, colors := termGrid(entries)
		grid := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderRow(true).
			Headers(append([]string{"Time"}, lo.Map(weekdays, func(day time.Weekday, _ int) string { return day.String() })...)...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if row >= 0 && row < len(colors) && colors[row][col] >= 0 {
					return cellStyle.Foreground(slotColors[colors[row][col]%len(slotColors)])
				}
				return cellStyle
			})

		title := titleStyle.Render(fmt.Sprintf("Term %v - %v Schedule", index, schedule.TermType(index)))
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, title, grid.String()))
	}

	if missed := schedule.MissedOpportunities(); len(missed) > 0 {
		blocks = append(blocks, missedStyle.Render("Missed opportunities:\n  "+strings.Join(missed, "\n  ")))
	}

	return strings.Join(blocks, "\n\n")
}

// termGrid lays the entries of a term on the weekly grid. colors holds the entry index that fills each
// cell, or -1 for empty cells.
func termGrid(entries []scheduler.Entry) (rows [][]string, colors [][]int) {
	for clock := model.EarliestTime; clock < model.LatestTime; clock += timeIncrement {
		row := make([]string, len(weekdays)+1)
		color := lo.Times(len(weekdays)+1, func(_ int) int { return -1 })
		row[0] = clock.String()

		for i, entry := range entries {
			for _, slot := range entry.Offering.TimeSlots {
				// Cells cannot be partially covered, so the end is exclusive
				if slot.Start <= clock && clock < slot.End {
					column := 1 + lo.IndexOf(weekdays, slot.Day)
					row[column] = entry.Course.Name()
					color[column] = i
				}
			}
		}

		rows = append(rows, row)
		colors = append(colors, color)
	}
	return rows, colors
}
