package form

import "github.com/iliyamo/fyyur/internal/model"

// VenueForm is the payload of the new-venue and edit-venue forms.
type VenueForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,state"`
	Address            string   `form:"address" json:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" json:"phone" validate:"required,max=120"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" json:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      Checkbox `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=120"`
}

// Normalize trims whitespace from the text fields.
func (f *VenueForm) Normalize() {
	clean(&f.Name, &f.City, &f.State, &f.Address, &f.Phone, &f.ImageLink,
		&f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
}

// Venue converts the form into a venue record with the given id.
func (f *VenueForm) Venue(id uint64) *model.Venue {
	return &model.Venue{
		ID:                 id,
		Name:               f.Name,
		Genres:             append([]string(nil), f.Genres...),
		Address:            f.Address,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Website:            f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		SeekingTalent:      bool(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
		ImageLink:          f.ImageLink,
	}
}

// VenueDefinition describes the venue form fields.
func VenueDefinition() Definition {
	return Definition{Fields: []Field{
		text("name", "Name", true, 120),
		text("city", "City", true, 120),
		{Name: "state", Label: "State", Type: "select", Required: true, Choices: StateChoices()},
		text("address", "Address", true, 120),
		text("phone", "Phone", true, 120),
		text("image_link", "Image Link", false, 500),
		{Name: "genres", Label: "Genres", Type: "multiselect", Required: true, Choices: GenreChoices()},
		text("facebook_link", "Facebook Link", false, 120),
		text("website_link", "Website Link", false, 120),
		{Name: "seeking_talent", Label: "Looking for Talent", Type: "checkbox"},
		{Name: "seeking_description", Label: "Seeking Description", Type: "textarea", MaxLength: 120},
	}}
}

// VenueValues prefills the venue form from a stored record.
func VenueValues(v *model.Venue) map[string]any {
	return map[string]any{
		"name":                v.Name,
		"city":                v.City,
		"state":               v.State,
		"address":             v.Address,
		"phone":               v.Phone,
		"image_link":          v.ImageLink,
		"genres":              v.Genres,
		"facebook_link":       v.FacebookLink,
		"website_link":        v.Website,
		"seeking_talent":      v.SeekingTalent,
		"seeking_description": v.SeekingDescription,
	}
}
