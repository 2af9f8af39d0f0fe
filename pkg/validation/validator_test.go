package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("binding validator is not validator/v10")
	}
	return v
}

func TestDetailsUseWireNames(t *testing.T) {
	type payload struct {
		Username string `form:"username" binding:"required,username"`
		Email    string `json:"email" binding:"required,email"`
	}
	v := engine(t)

	details := ToDetails(v.Struct(payload{}))
	if details == nil {
		t.Fatal("expected validation details")
	}
	if _, ok := details["username"]; !ok {
		t.Errorf("details keyed as %v, want form tag name username", details)
	}
	if _, ok := details["email"]; !ok {
		t.Errorf("details keyed as %v, want json tag name email", details)
	}
	if _, ok := details["Username"]; ok {
		t.Error("details keyed on the Go field name")
	}
}

func TestAliasMessages(t *testing.T) {
	type payload struct {
		Password string `json:"password" binding:"pwd"`
		Handle   string `form:"handle" binding:"username"`
	}
	v := engine(t)

	details := ToDetails(v.Struct(payload{Password: "short", Handle: "x!"}))
	if details["password"] == "" {
		t.Errorf("no message for short password: %v", details)
	}
	if details["handle"] == "" {
		t.Errorf("no message for bad handle: %v", details)
	}
}

func TestToDetailsNilAndOpaque(t *testing.T) {
	if ToDetails(nil) != nil {
		t.Error("nil error produced details")
	}
	details := ToDetails(errors.New("boom"))
	if details["payload"] != "invalid payload" {
		t.Errorf("opaque error details = %v", details)
	}
}
