package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User mirrors a document in the users collection. Field names follow the
// camelCase documents already stored there.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username        string             `bson:"username" json:"username"`
	Password        string             `bson:"password" json:"-"`
	FullName        string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Email           string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	ProfilePic      string             `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	AadhaarNumber   string             `bson:"aadhaarNumber,omitempty" json:"aadhaarNumber,omitempty"`
	AadhaarVerified bool               `bson:"aadhaarVerified" json:"aadhaarVerified"`
}

func (u *User) BeforeCreate() error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	return nil
}

// Profile is the public projection of a User.
type Profile struct {
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ProfileImage string `json:"profileImage"`
}

func (u *User) Profile() Profile {
	return Profile{
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		Address:      u.Address,
		ProfileImage: u.ProfilePic,
	}
}
