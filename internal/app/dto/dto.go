package dto

type RegisterDTO struct {
	Email    string `json:"email"     form:"email"     validate:"required,email"`
	Username string `json:"username"  form:"username"  validate:"required,alphanum,min=3,max=50"`
	Password string `json:"password"  form:"password"  validate:"required,min=8,max=100"`
	FullName string `json:"full_name" form:"full_name" validate:"omitempty,max=100"`
}

type LoginDTO struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     form:"new_password"     validate:"required,min=8,max=100"`
}

type UserUpdateDTO struct {
	Email     *string `json:"email"      validate:"omitempty,email"`
	Username  *string `json:"username"   validate:"omitempty,alphanum,min=3,max=50"`
	FullName  *string `json:"full_name"  validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=500"`
	Password  *string `json:"password"   validate:"omitempty,min=8,max=100"`
}

type ItemCreateDTO struct {
	Title       string `json:"title"       form:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" form:"description" validate:"omitempty"`
	Priority    int    `json:"priority"    form:"priority"    validate:"gte=0,lte=10"`
}

type ItemUpdateDTO struct {
	Title       *string `json:"title"       form:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" form:"description"`
	Priority    *int    `json:"priority"    form:"priority"    validate:"omitempty,gte=0,lte=10"`
	IsActive    *bool   `json:"is_active"   form:"is_active"`
}
