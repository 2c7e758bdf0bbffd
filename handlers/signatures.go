package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/collections"
	"quotecomposer/quotetable"
	"quotecomposer/services"
)

// HandleSignatureInsert handles POST /documents/{id}/signatures. The block
// goes after the block reported in cursorBlock.
func HandleSignatureInsert(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		users, err := collections.LoadSignees(ed.app)
		if err != nil {
			log.Printf("signature_insert: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, doc *quotetable.Document) error {
			placeCursor(doc, e.Request)
			_, err := ctrl.InsertSignatureBlock(users)
			return err
		})
		if err != nil {
			return gestureError(e, "signature_insert", err)
		}
		return respond(e, html)
	}
}

// HandleSigneeSelect handles POST /documents/{id}/signatures/{signature}/signee/{user}
func HandleSigneeSelect(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		users, err := collections.LoadSignees(ed.app)
		if err != nil {
			log.Printf("signee_select: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		user, ok := services.FindUser(users, e.Request.PathValue("user"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "User not found")
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			return ctrl.SelectSignee(e.Request.PathValue("signature"), user)
		})
		if err != nil {
			return gestureError(e, "signee_select", err)
		}
		return respond(e, html)
	}
}
