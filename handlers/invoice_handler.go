// handlers/invoice_handler.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dangtoan2205/asset-manager-sub000/authz"
	"github.com/dangtoan2205/asset-manager-sub000/service"
	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

func ListInvoices(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := store.InvoiceFilter{
		Status: r.URL.Query().Get("status"),
		Vendor: r.URL.Query().Get("vendor"),
	}
	invoices, err := stores.Invoices.List(ctx, filter)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoices)
}

func GetInvoice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	invoice, err := stores.Invoices.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoice)
}

func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpCreate) {
		return
	}

	var in service.CreateInvoiceInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, _ := callerID(r)
	invoice, err := invoiceSvc.Create(ctx, in, uid)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "invoice_create", "invoice", invoice.ID, bson.M{
		"invoiceNumber": invoice.InvoiceNumber,
		"vendor":        invoice.Vendor,
	})
	utils.RespondWithJSON(w, http.StatusCreated, invoice)
}

// ImportInvoice accepts an invoice payload that a collaborating importer has
// already extracted from a PDF or spreadsheet.
func ImportInvoice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpCreate) {
		return
	}

	var in service.CreateInvoiceInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, _ := callerID(r)
	invoice, err := invoiceSvc.Import(ctx, in, uid)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "invoice_import", "invoice", invoice.ID, bson.M{
		"invoiceNumber": invoice.InvoiceNumber,
		"items":         len(invoice.Items),
	})
	utils.RespondWithJSON(w, http.StatusCreated, invoice)
}

// ProcessInvoiceItem turns one line item into a device or component record.
func ProcessInvoiceItem(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpCreate) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid item index")
		return
	}

	var details service.ItemDetails
	if err := utils.ParseJSON(r, &details); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := invoiceSvc.ProcessItem(ctx, id, index, details)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "invoice_item_process", "invoice", id, bson.M{
		"index":         index,
		"invoiceNumber": result.Invoice.InvoiceNumber,
	})
	utils.RespondWithJSON(w, http.StatusOK, result)
}

func UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	var patch service.UpdateInvoiceInput
	if err := utils.ParseJSON(r, &patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	invoice, err := invoiceSvc.Update(ctx, id, patch)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "invoice_update", "invoice", invoice.ID, bson.M{"invoiceNumber": invoice.InvoiceNumber})
	utils.RespondWithJSON(w, http.StatusOK, invoice)
}

// DeleteInvoice is admin-only and refuses once any item has been processed.
func DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpDeleteInvoice) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := invoiceSvc.Delete(ctx, id); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "invoice_delete", "invoice", id, nil)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "invoice deleted"})
}
