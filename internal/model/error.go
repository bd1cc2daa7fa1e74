package model

import "errors"

var ErrorSignupFieldsRequired = errors.New("name, email and password are required")
var ErrorLoginFieldsRequired = errors.New("email and password are required")
var ErrorContactFieldsRequired = errors.New("name and phone are required")
var ErrorEmailRegistered = errors.New("email already registered")
var ErrorInvalidEmailOrPassword = errors.New("invalid email or password")
var ErrorNotAuthenticated = errors.New("not authenticated")
var ErrorUserNotFound = errors.New("user not found")
var ErrorContactNotFound = errors.New("contact not found")
