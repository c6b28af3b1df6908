package logsvc

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"labstock/db"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// exportRow is one flattened line of the published report.
type exportRow struct {
	ID        string `json:"id"`
	Item      string `json:"item"`
	Operation string `json:"operation"`
	Scope     string `json:"type"`
	Message   string `json:"message"`
	User      string `json:"user"`
	Date      string `json:"date"`
}

// buildRows resolves item and user references to display names. Two $in
// queries instead of a per-row lookup.
func buildRows(ctx context.Context, logs []models.Log) ([]exportRow, error) {
	itemIDs := make([]primitive.ObjectID, 0, len(logs))
	userIDs := make([]primitive.ObjectID, 0, len(logs))
	for _, l := range logs {
		if !l.ItemID.IsZero() {
			itemIDs = append(itemIDs, l.ItemID)
		}
		if !l.UserID.IsZero() {
			userIDs = append(userIDs, l.UserID)
		}
	}

	itemNames := map[primitive.ObjectID]string{}
	if len(itemIDs) > 0 {
		items, err := utils.FindAndDecode[models.ItemSummary](ctx, db.ItemCollection,
			bson.M{"_id": bson.M{"$in": itemIDs}})
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			itemNames[it.ID] = it.Name
		}
	}

	userNames := map[primitive.ObjectID]string{}
	if len(userIDs) > 0 {
		users, err := utils.FindAndDecode[models.UserSummary](ctx, db.UserCollection,
			bson.M{"_id": bson.M{"$in": userIDs}})
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			userNames[u.ID] = u.Name
		}
	}

	rows := make([]exportRow, 0, len(logs))
	for _, l := range logs {
		item, user := "N/A", "N/A"
		if n, ok := itemNames[l.ItemID]; ok {
			item = n
		}
		if n, ok := userNames[l.UserID]; ok {
			user = n
		}
		rows = append(rows, exportRow{
			ID:        l.ID.Hex(),
			Item:      item,
			Operation: l.Operation,
			Scope:     l.Scope,
			Message:   l.Message,
			User:      user,
			Date:      l.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

var exportHeader = []string{"ID", "Item", "Operation", "Type", "Message", "User", "Date"}

// WriteCSV renders rows as CSV with the export header.
func WriteCSV(w *csv.Writer, rows []exportRow) error {
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.ID, row.Item, row.Operation, row.Scope, row.Message, row.User, row.Date}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writePDF(w http.ResponseWriter, rows []exportRow) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Audit Log Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{45, 45, 30, 22, 70, 35, 40}
	for i, h := range exportHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		cells := []string{row.ID, row.Item, row.Operation, row.Scope, row.Message, row.User, row.Date}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=logs.pdf")
	return pdf.Output(w)
}

// PublishLogs handles POST /admin/logs/publish. Exports the full audit log
// as json (default), csv, or pdf.
func PublishLogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Format string `json:"format"`
	}
	// Empty body means the json default.
	_ = json.NewDecoder(r.Body).Decode(&input)

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	logs, err := utils.FindAndDecode[models.Log](r.Context(), db.LogCollection, bson.M{}, opts)
	if err != nil {
		log.Printf("logs export find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while publishing logs.")
		return
	}

	rows, err := buildRows(r.Context(), logs)
	if err != nil {
		log.Printf("logs export enrich failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while publishing logs.")
		return
	}

	switch input.Format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=logs.csv")
		if err := WriteCSV(csv.NewWriter(w), rows); err != nil {
			log.Printf("csv export failed: %v", err)
		}
	case "pdf":
		if err := writePDF(w, rows); err != nil {
			log.Printf("pdf export failed: %v", err)
		}
	default:
		utils.SendSuccess(w, http.StatusOK, "Logs published successfully.", utils.M{
			"reportId":     utils.GetUUID(),
			"totalRecords": len(rows),
			"logs":         rows,
			"publishedAt":  time.Now(),
		})
	}
}
