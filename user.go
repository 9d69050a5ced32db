package main

import (
	"errors"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

var (
	ErrUserExists   = errors.New("username already taken")
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserStore is what the account routes need from the user database.
type UserStore interface {
	Create(u *User) error
	GetByUsername(username string) (*User, error)
}

type userModel struct {
	Id       bson.ObjectId `bson:"_id,omitempty"`
	Username string
	Password string
}

func userModelIndex() mgo.Index {
	return mgo.Index{
		Key:        []string{"username"},
		Unique:     true,
		DropDups:   true,
		Background: true,
		Sparse:     true,
	}
}

func newUserModel(u *User) *userModel {
	return &userModel{
		Username: u.Username,
		Password: u.Password}
}

func (u *userModel) toRootUser() *User {
	return &User{
		Id:       u.Id.Hex(),
		Username: u.Username,
		Password: u.Password}
}

// UserService keeps accounts in a mongo collection with a unique username.
type UserService struct {
	collection *mgo.Collection
	hash       HashAbs
}

func NewUserService(session *Session, dbName string, collectionName string, h HashAbs) (*UserService, error) {
	collection := session.GetCollection(dbName, collectionName)
	if err := collection.EnsureIndex(userModelIndex()); err != nil {
		return nil, err
	}
	return &UserService{collection, h}, nil
}

func (p *UserService) Create(u *User) error {
	user := newUserModel(u)
	hashedPassword, err := p.hash.Generate(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	err = p.collection.Insert(&user)
	if mgo.IsDup(err) {
		return ErrUserExists
	}
	return err
}

func (p *UserService) GetByUsername(username string) (*User, error) {
	model := userModel{}
	err := p.collection.Find(bson.M{"username": username}).One(&model)
	if err == mgo.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toRootUser(), nil
}
