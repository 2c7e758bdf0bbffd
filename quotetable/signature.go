package quotetable

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"quotecomposer/services"
	"quotecomposer/templates"
)

// InsertSignatureBlock inserts a signature block offering users as signees,
// followed by a paragraph that receives the cursor.
func (c *Controller) InsertSignatureBlock(users []services.User) (string, error) {
	id := "signature-block-" + uuid.NewString()
	html, err := templates.RenderString(context.Background(), templates.SignatureBlock(id, users))
	if err != nil {
		return "", fmt.Errorf("render signature block: %w", err)
	}
	if err := c.host.InsertFragment(html + "<p><br></p>"); err != nil {
		return "", err
	}
	block, err := c.signatureBlock(id)
	if err != nil {
		return "", err
	}
	if p := block.NextFiltered("p"); p.Length() > 0 {
		c.host.SetCursor(p, 0)
	}
	c.host.NotifyChanged()
	return id, nil
}

func (c *Controller) signatureBlock(id string) (*goquery.Selection, error) {
	block := c.host.Select(nil, `.signature-block[id="`+id+`"]`).First()
	if block.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSignatureNotFound, id)
	}
	return block, nil
}

// SelectSignee records the chosen user on a signature block and closes
// its dropdown.
func (c *Controller) SelectSignee(blockID string, user services.User) error {
	block, err := c.signatureBlock(blockID)
	if err != nil {
		return err
	}
	block.Find(".selected-user-name").First().SetText(user.Name)
	block.SetAttr("data-user-id", user.ID)
	block.SetAttr("data-user-name", user.Name)
	block.SetAttr("data-user-email", user.Email)
	block.SetAttr("data-user-role", user.Role)
	c.closeActive()
	c.host.NotifyChanged()
	return nil
}

// signatures lists the document's signature blocks in document order.
func (c *Controller) signatures() []services.ExportSignature {
	var sigs []services.ExportSignature
	c.host.Select(nil, ".signature-block").Each(func(i int, block *goquery.Selection) {
		sigs = append(sigs, services.ExportSignature{
			Label: fmt.Sprintf("Signature %d", i+1),
			Name:  strings.TrimSpace(block.AttrOr("data-user-name", "")),
			Email: block.AttrOr("data-user-email", ""),
			Role:  block.AttrOr("data-user-role", ""),
		})
	})
	return sigs
}
