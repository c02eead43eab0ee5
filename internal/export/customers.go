// Package export renders record lists as spreadsheets.
package export

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

const (
	CustomersSheet = "Customers"
	ContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var customerHeaders = []string{
	"ID", "Name", "Gender", "Age", "Phone", "Email", "Address",
	"Source", "Value Tier", "Spending Tier", "Demand Category",
	"Visit Frequency", "Satisfaction", "Membership ID", "Referrer ID", "Created At",
}

func customerRow(c models.Customer, loc *time.Location) []any {
	return []any{
		c.ID, c.Name, c.Gender, c.Age, c.Phone, c.Email, c.Address,
		c.Source, c.ValueTier, c.SpendingTier, c.DemandCategory,
		c.VisitFrequency, c.SatisfactionScore, optional(c.MembershipID), optional(c.ReferrerID),
		c.CreatedAt.In(loc).Format("2006-01-02 15:04"),
	}
}

func optional(v *uint) any {
	if v == nil {
		return ""
	}
	return *v
}

// Customers writes one header row and one row per customer to w as xlsx.
func Customers(w io.Writer, customers []models.Customer, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CustomersSheet); err != nil {
		return err
	}

	for col, h := range customerHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(CustomersSheet, cell, h); err != nil {
			return err
		}
	}

	for i, c := range customers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := customerRow(c, loc)
		if err := f.SetSheetRow(CustomersSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(CustomersSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.Write(w)
}
