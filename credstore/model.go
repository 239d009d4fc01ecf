package credstore

// Profile is the cached user record returned by the account endpoint. It is
// replaced wholesale on every successful fetch; the auth layer never mutates
// individual fields.
type Profile struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Kana       string `json:"kana,omitempty"`
	Birthday   string `json:"birthday,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Bio        string `json:"bio,omitempty"`

	NotificationSettings map[string]bool   `json:"notification_settings,omitempty"`
	AppSettings          map[string]string `json:"app_settings,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Clone returns a deep copy so state snapshots cannot alias live maps.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	out := *p
	if p.NotificationSettings != nil {
		out.NotificationSettings = make(map[string]bool, len(p.NotificationSettings))
		for k, v := range p.NotificationSettings {
			out.NotificationSettings[k] = v
		}
	}
	if p.AppSettings != nil {
		out.AppSettings = make(map[string]string, len(p.AppSettings))
		for k, v := range p.AppSettings {
			out.AppSettings[k] = v
		}
	}

	return &out
}
