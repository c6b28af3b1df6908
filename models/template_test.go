package models

import "testing"

func TestTemplateFieldValidate(t *testing.T) {
	cases := []struct {
		name    string
		field   TemplateField
		wantErr bool
	}{
		{"component ok", TemplateField{Type: FieldComponent, Name: "RAM", Key: "ram", DataType: DataTypeText}, false},
		{"component no datatype", TemplateField{Type: FieldComponent, Name: "RAM", Key: "ram"}, false},
		{"component missing key", TemplateField{Type: FieldComponent, Name: "RAM"}, true},
		{"component bad datatype", TemplateField{Type: FieldComponent, Name: "RAM", Key: "ram", DataType: "blob"}, true},
		{"device ok", TemplateField{Type: FieldDevice, Name: "Monitor", Category: "display"}, false},
		{"device missing name", TemplateField{Type: FieldDevice, Category: "display"}, true},
		{"data ok", TemplateField{Type: FieldData, Key: "serial", Value: "SN-1"}, false},
		{"data missing key", TemplateField{Type: FieldData, Value: "SN-1"}, true},
		{"unknown type", TemplateField{Type: "widget", Name: "x"}, true},
		{"empty type", TemplateField{}, true},
	}

	for _, c := range cases {
		err := c.field.Validate()
		if c.wantErr && err == nil {
			t.Errorf("%s: expected error", c.name)
		}
		if !c.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
	}
}

func TestValidDataType(t *testing.T) {
	for _, dt := range []string{DataTypeText, DataTypeNumber, DataTypeDescription} {
		if !ValidDataType(dt) {
			t.Errorf("%q rejected", dt)
		}
	}
	for _, dt := range []string{"", "blob", "TEXT"} {
		if ValidDataType(dt) {
			t.Errorf("%q accepted", dt)
		}
	}
}

func TestUserRoleHelpers(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	staff := &User{Role: RoleStaff}
	plain := &User{Role: RoleUser}

	if !admin.IsAdmin() || admin.IsStaff() {
		t.Error("admin role misclassified")
	}
	if !staff.IsStaff() || staff.IsAdmin() {
		t.Error("staff role misclassified")
	}
	if plain.IsAdmin() || plain.IsStaff() {
		t.Error("user role misclassified")
	}
}
