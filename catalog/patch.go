package catalog

import (
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	cp "github.com/reoring/catalogpatch"
	"github.com/reoring/catalogpatch/codec"
	"github.com/reoring/catalogpatch/rules"
)

// PatchFields is the partial product decoded from a merge patch document.
// A nil pointer means absent or null; the presence set tells them apart.
type PatchFields struct {
	Name        *string
	ImgURI      *string
	Price       *decimal.Decimal
	Description *string
}

var (
	NameField = cp.NewField[PatchFields, string](FieldName, "string",
		func(p *PatchFields) **string { return &p.Name }).
		MaxLength(200).
		Describe("Display name of the product.")

	ImgURIField = cp.NewField[PatchFields, string](FieldImgURI, "string",
		func(p *PatchFields) **string { return &p.ImgURI }).
		MaxLength(500).
		Format("uri").
		Describe("Absolute URI of the product image.")

	PriceField = cp.NewField[PatchFields, decimal.Decimal](FieldPrice, "number",
		func(p *PatchFields) **decimal.Decimal { return &p.Price }).
		DecodeWith(codec.JSONNumber().Decode).
		Minimum(0).
		Describe("Unit price.")

	DescriptionField = cp.NewField[PatchFields, string](FieldDescription, "string",
		func(p *PatchFields) **string { return &p.Description }).
		AllowNull().
		MaxLength(2000).
		Describe("Free text description. Set to null to clear it.")

	// PatchSchema is the updatable field table of a product. The SKU is the
	// identity and is carried by the request path, never by the document.
	PatchSchema = cp.NewSchema[PatchFields](NameField, ImgURIField, PriceField, DescriptionField)

	// PatchValidator holds the per-field rules, evaluated only for fields
	// present in the patch.
	PatchValidator = cp.NewValidator(PatchSchema,
		rules.NotEmpty(FieldName, "Name cannot be empty", patchName),
		rules.MaxLen(FieldName, "Name must not exceed 200 characters", 200, patchName),

		rules.NotEmpty(FieldImgURI, "ImgUri cannot be empty", patchImgURI),
		rules.MaxLen(FieldImgURI, "ImgUri must not exceed 500 characters", 500, patchImgURI),
		rules.AbsoluteURI(FieldImgURI, "ImgUri must be a valid absolute URI", patchImgURI),

		rules.NotNull(FieldPrice, "Price cannot be null", patchPrice),
		rules.WhenNotNull(rules.Must(FieldPrice, cp.CodeTooSmall, "Price must be greater than or equal to 0", patchPrice,
			func(v *decimal.Decimal) bool { return !v.IsNegative() }), patchPrice),

		rules.WhenNotNull(rules.MaxLen(FieldDescription, "Description must not exceed 2000 characters", 2000, patchDescription), patchDescription),
	)
)

func patchName(p PatchFields) *string { return p.Name }
func patchImgURI(p PatchFields) *string { return p.ImgURI }
func patchPrice(p PatchFields) *decimal.Decimal { return p.Price }
func patchDescription(p PatchFields) *string { return p.Description }

// NewCommand resolves every field of a mapped patch. Resolution errors of all
// fields are combined so one response can name each bad field.
func NewCommand(sku string, p PatchFields, presence cp.PresenceSet) (Command, error) {
	name, err1 := cp.Resolve(NameField, presence, p)
	imgURI, err2 := cp.Resolve(ImgURIField, presence, p)
	price, err3 := cp.Resolve(PriceField, presence, p)
	description, err4 := cp.Resolve(DescriptionField, presence, p)
	if err := multierr.Combine(err1, err2, err3, err4); err != nil {
		return Command{}, err
	}
	return Command{
		SKU:         sku,
		Name:        name,
		ImgURI:      imgURI,
		Price:       price,
		Description: description,
	}, nil
}

// PreparePatch checks the SKU and turns a merge patch document into a
// Command: map, validate the present fields, then resolve. Errors are
// cp.Issues for SKU or field rule violations, cp.ErrInvalidInput for a body
// that is not a JSON object, and *cp.MalformedFieldError (possibly several,
// combined) for undecodable values or illegal nulls.
func PreparePatch(sku string, doc []byte) (Command, error) {
	if iss := ValidateSKU(sku); len(iss) > 0 {
		return Command{}, iss
	}
	p, presence, err := cp.Map(doc, PatchSchema)
	if err != nil {
		return Command{}, err
	}
	if iss := PatchValidator.Validate(p, presence); len(iss) > 0 {
		return Command{}, iss
	}
	return NewCommand(sku, p, presence)
}
