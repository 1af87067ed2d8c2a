package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Daniyar05/esports-tournament-system/standings"
	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	StandingsWorkbook(ctx context.Context, tournamentID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	standingsService StandingsService
}

func NewExportService(standingsService StandingsService) ExportService {
	return &exportService{standingsService: standingsService}
}

// StandingsWorkbook собирает xlsx со сводной таблицей турнира.
// Возвращает буфер с книгой и имя файла для Content-Disposition.
func (s *exportService) StandingsWorkbook(ctx context.Context, tournamentID string) (*bytes.Buffer, string, error) {
	view, err := s.standingsService.Standings(ctx, tournamentID, MatchAll)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Standings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"#", "Team", "Placement Points", "Kills", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "E1", headerStyle)
	}

	for i, row := range view.Rows {
		kills, placementPoints := standings.TeamTotals(row.Team)
		position := ""
		if row.Position != nil {
			position = fmt.Sprintf("%d", *row.Position)
		}
		values := []interface{}{position, row.Team.TeamName, placementPoints, kills, placementPoints + kills}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	f.SetColWidth(sheet, "B", "B", 32)
	f.SetColWidth(sheet, "C", "E", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("standings_%s.xlsx", view.Tournament.ID)
	return buf, filename, nil
}
