package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joelkehle/targetscout/internal/asset"
)

var assetHeader = []string{
	"Drug", "Aliases", "Target", "Modality", "Owner", "Owner Type",
	"Phase", "Status", "Lead Indication", "Trial Count", "Trial IDs",
	"Confidence", "Verification Method", "Verification Details",
}

// WriteExcel saves the report as a workbook with one sheet per confidence
// tier plus a summary sheet.
func WriteExcel(r asset.ResearchReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, r); err != nil {
		return err
	}
	tiers := []struct {
		name   string
		assets []asset.DiscoveredAsset
	}{
		{"Verified", r.Verified},
		{"Probable", r.Probable},
		{"Unverified", r.Unverified},
	}
	for _, tier := range tiers {
		if err := writeAssetSheet(f, tier.name, tier.assets); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r asset.ResearchReport) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	rows := [][]any{
		{"Target", r.Target},
		{"Assets retained", r.Summary.Total},
		{"Verified", len(r.Verified)},
		{"Probable", len(r.Probable)},
		{"Unverified", len(r.Unverified)},
		{"Excluded during verification", r.Summary.ExcludedCount},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeAssetSheet(f *excelize.File, sheet string, assets []asset.DiscoveredAsset) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := make([]any, len(assetHeader))
	for i, h := range assetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, a := range assets {
		row := []any{
			a.DrugName,
			joinList(a.Aliases),
			a.Target,
			string(a.Modality),
			a.Owner,
			string(a.OwnerType),
			string(a.Phase),
			string(a.Status),
			a.LeadIndication,
			a.TrialCount,
			joinList(a.TrialIDs),
			string(a.Confidence),
			string(a.VerificationMethod),
			a.VerificationDetails,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func joinList(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
