package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"learnhub/backend/models"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var ExportHeader = []string{
	"ID", "Name", "Email", "Role", "Active",
	"Total Progress", "Completed Lessons", "Current Streak", "Longest Streak", "Created At",
}

// exportSheet is the default sheet of a new workbook.
const exportSheet = "Sheet1"

func exportRow(u models.UserSummary) []string {
	return []string{
		strconv.FormatUint(uint64(u.ID), 10),
		u.Name,
		u.Email,
		u.Role,
		strconv.FormatBool(u.IsActive),
		strconv.FormatInt(u.TotalProgress, 10),
		strconv.FormatInt(u.CompletedLessons, 10),
		strconv.Itoa(u.CurrentStreak),
		strconv.Itoa(u.LongestStreak),
		u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// WriteUsersCSV writes the header and one RFC 4180 row per user.
func WriteUsersCSV(w io.Writer, users []models.UserSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, u := range users {
		if err := cw.Write(exportRow(u)); err != nil {
			return errors.Wrapf(err, "write user %d", u.ID)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// WriteUsersXLSX writes the same table as a single-sheet workbook.
func WriteUsersXLSX(w io.Writer, users []models.UserSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, title := range ExportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.Wrap(err, "header cell")
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return errors.Wrap(err, "write header")
		}
	}

	for r, u := range users {
		values := []interface{}{
			u.ID, u.Name, u.Email, u.Role, u.IsActive,
			u.TotalProgress, u.CompletedLessons, u.CurrentStreak, u.LongestStreak,
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return errors.Wrap(err, "row cell")
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return errors.Wrapf(err, "write user %d", u.ID)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

// ExportFilename is the attachment name suggested for an export made at now.
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("users-export-%s.%s", now.UTC().Format("2006-01-02"), ext)
}
