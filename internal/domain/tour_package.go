package domain

import "encoding/json"

// PackageEditableFields is the whitelist PUT /packages/:id overwrites.
var PackageEditableFields = []string{
	"tour_name",
	"image",
	"duration",
	"price",
	"departure_date",
	"departure_location",
	"destination",
	"package_details",
}

// TourPackage is a guide's tour offer. Only the attributes the service acts
// on are typed; everything else (tour_name, price, duration, ...) is stored
// and returned as sent, in Extra.
type TourPackage struct {
	ID           string
	GuideEmail   string
	BookingCount int64
	Extra        Fields
}

// NewTourPackage builds a package from a stored document. The _id key is
// left to the caller since its representation depends on the store.
func NewTourPackage(doc map[string]any) TourPackage {
	raw := make(map[string]any, len(doc))
	for k, v := range doc {
		raw[k] = v
	}
	delete(raw, "_id")

	var pkg TourPackage
	pkg.GuideEmail = takeString(raw, "guide_email")
	pkg.BookingCount = takeCount(raw, "bookingCount")
	pkg.Extra = remaining(raw)
	return pkg
}

// Document returns the stored form of the package, without _id.
func (p TourPackage) Document() map[string]any {
	doc := make(map[string]any, len(p.Extra)+2)
	for k, v := range p.Extra {
		doc[k] = v
	}
	if p.GuideEmail != "" {
		doc["guide_email"] = p.GuideEmail
	}
	doc["bookingCount"] = p.BookingCount
	return doc
}

func (p TourPackage) MarshalJSON() ([]byte, error) {
	doc := p.Document()
	if p.ID != "" {
		doc["_id"] = p.ID
	}
	return json.Marshal(doc)
}

func (p *TourPackage) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id := takeString(raw, "_id")
	*p = NewTourPackage(raw)
	p.ID = id
	return nil
}

// PackageUpdate carries the whitelisted attributes of an update body as
// sent. Keys outside the whitelist are dropped on decode.
type PackageUpdate struct {
	values Fields
}

func NewPackageUpdate(body map[string]any) PackageUpdate {
	values := make(Fields, len(PackageEditableFields))
	for _, key := range PackageEditableFields {
		if v, ok := body[key]; ok {
			values[key] = v
		}
	}
	return PackageUpdate{values: values}
}

func (u *PackageUpdate) UnmarshalJSON(data []byte) error {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	*u = NewPackageUpdate(body)
	return nil
}

// Fields returns every whitelisted attribute; absent ones are nil and get
// written as null.
func (u PackageUpdate) Fields() map[string]any {
	fields := make(map[string]any, len(PackageEditableFields))
	for _, key := range PackageEditableFields {
		fields[key] = u.values[key]
	}
	return fields
}

func takeCount(raw map[string]any, key string) int64 {
	v, ok := raw[key]
	if !ok {
		return 0
	}
	delete(raw, key)
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	default:
		return 0
	}
}
