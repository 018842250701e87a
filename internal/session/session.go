// Package session holds the locally persisted authenticated identity: an
// opaque token from the remote store plus a user profile.
package session

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Sentinel errors for authentication operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistration       = errors.New("registration rejected")
)

// Name is a user's display name.
type Name struct {
	First string
	Last  string
}

// Profile identifies the authenticated user.
type Profile struct {
	ID       int64
	Username string
	Email    string
	Name     Name
}

// NewUser carries the fields needed to create a remote account.
type NewUser struct {
	Username string
	Password string
	Email    string
	Name     Name
}

// Authenticator performs credential checks and account creation against the
// remote store.
type Authenticator interface {
	// Login exchanges credentials for an opaque token.
	Login(ctx context.Context, username, password string) (string, error)
	// RegisterUser creates an account and returns the new account id.
	RegisterUser(ctx context.Context, u NewUser) (int64, error)
}

// encodeProfile serializes a profile for the persistent store.
func encodeProfile(p Profile) string {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(p.ID) })
		e.Field("username", func(e *jx.Encoder) { e.Str(p.Username) })
		e.Field("email", func(e *jx.Encoder) { e.Str(p.Email) })
		e.Field("name", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("firstname", func(e *jx.Encoder) { e.Str(p.Name.First) })
				e.Field("lastname", func(e *jx.Encoder) { e.Str(p.Name.Last) })
			})
		})
	})
	return e.String()
}

// decodeProfile parses a persisted profile snapshot.
func decodeProfile(data string) (Profile, error) {
	var p Profile
	d := jx.DecodeStr(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			p.ID = v
		case "username":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "username")
			}
			p.Username = v
		case "email":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "email")
			}
			p.Email = v
		case "name":
			return d.Obj(func(d *jx.Decoder, key string) error {
				switch key {
				case "firstname":
					v, err := d.Str()
					if err != nil {
						return errors.Wrap(err, "firstname")
					}
					p.Name.First = v
				case "lastname":
					v, err := d.Str()
					if err != nil {
						return errors.Wrap(err, "lastname")
					}
					p.Name.Last = v
				default:
					return d.Skip()
				}
				return nil
			})
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return Profile{}, err
	}
	if p.Username == "" {
		return Profile{}, errors.New("profile without username")
	}
	return p, nil
}
