package handlers

import "github.com/go-playground/validator/v10"

// validate общий инстанс валидатора для HTTP request моделей
// Потокобезопасен, кеширует метаданные структур
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct валидирует request модель по validate-тегам
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
