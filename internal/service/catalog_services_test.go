package service

import (
	"context"
	"testing"

	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/repository"
	"go-expiry-tracker/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandService_ListSearch(t *testing.T) {
	ctx := context.Background()
	svc := NewBrandService(repository.NewBrandRepo(newTestDB(t)))

	for _, name := range []string{"Nestlé", "Danone", "nescafe", "Alpro"} {
		_, err := svc.Create(ctx, &BrandRequest{Name: name}, "admin")
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Alpro", all[0].Name)

	hits, err := svc.List(ctx, "NES")
	require.NoError(t, err)
	var got []string
	for _, b := range hits {
		got = append(got, b.Name)
	}
	assert.ElementsMatch(t, []string{"Nestlé", "nescafe"}, got)

	opts, err := svc.Options(ctx, "dan")
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "Danone", opts[0].Label)
}

func TestBrandService_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewBrandService(repository.NewBrandRepo(newTestDB(t)))

	_, err := svc.Create(ctx, &BrandRequest{Name: "  "}, "admin")
	assert.ErrorIs(t, err, validator.ErrValidation)

	b, err := svc.Create(ctx, &BrandRequest{Name: "Alpro", InOfferProgram: ptr(true)}, "admin")
	require.NoError(t, err)
	assert.True(t, b.InOfferProgram)

	_, err = svc.Create(ctx, &BrandRequest{Name: "Alpro"}, "admin")
	assert.ErrorIs(t, err, ErrBrandExists)

	updated, err := svc.Update(ctx, b.ID, &BrandRequest{Name: "Alpro"}, "admin")
	require.NoError(t, err)
	assert.True(t, updated.InOfferProgram, "omitted flag keeps its value")

	updated, err = svc.Update(ctx, b.ID, &BrandRequest{Name: "Alpro", InOfferProgram: ptr(false)}, "admin")
	require.NoError(t, err)
	assert.False(t, updated.InOfferProgram)

	_, err = svc.Update(ctx, uuid.New(), &BrandRequest{Name: "X"}, "admin")
	assert.ErrorIs(t, err, ErrBrandNotFound)

	_, err = svc.Create(ctx, &BrandRequest{Name: "Oatly"}, "admin")
	require.NoError(t, err)
	_, err = svc.Update(ctx, b.ID, &BrandRequest{Name: "Oatly"}, "admin")
	assert.ErrorIs(t, err, ErrBrandExists)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrBrandNotFound)
}

func TestCategoryService_DiscountDays(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(repository.NewCategoryRepo(newTestDB(t)))

	dairy, err := svc.Create(ctx, &CategoryRequest{Name: "Dairy"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, []int{30, 15, 5}, dairy.DiscountDays)

	bakery, err := svc.Create(ctx, &CategoryRequest{Name: "Bakery", DiscountDays: []int{2, 7, 0, 7, 400, 1}}, "admin")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 2, 1}, bakery.DiscountDays)

	got, err := svc.AddDiscountDay(ctx, dairy.ID, 10, "admin")
	require.NoError(t, err)
	assert.Equal(t, []int{30, 15, 10, 5}, got.DiscountDays)

	got, err = svc.AddDiscountDay(ctx, dairy.ID, 10, "admin")
	require.NoError(t, err)
	assert.Equal(t, []int{30, 15, 10, 5}, got.DiscountDays)

	_, err = svc.AddDiscountDay(ctx, dairy.ID, 366, "admin")
	assert.ErrorIs(t, err, ErrInvalidDay)

	got, err = svc.RemoveDiscountDay(ctx, dairy.ID, 15, "admin")
	require.NoError(t, err)
	assert.Equal(t, []int{30, 10, 5}, got.DiscountDays)

	stored, err := svc.Get(ctx, dairy.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{30, 10, 5}, stored.DiscountDays)

	updated, err := svc.Update(ctx, dairy.ID, &CategoryRequest{Name: "Dairy", DiscountDays: []int{}}, "admin")
	require.NoError(t, err)
	assert.Empty(t, updated.DiscountDays)

	_, err = svc.Create(ctx, &CategoryRequest{Name: "Dairy"}, "admin")
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, err = svc.Update(ctx, dairy.ID, &CategoryRequest{Name: bakery.Name}, "admin")
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, err = svc.AddDiscountDay(ctx, uuid.New(), 3, "admin")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	users := repository.NewUserRepo(newTestDB(t))
	svc := NewUserService(users)

	u, err := svc.CreateUser(ctx, &CreateUserRequest{Username: "bo", Email: "Bo@Example.com", Password: "secret1"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, u.Role)
	assert.Equal(t, "bo@example.com", u.Email)

	_, err = svc.CreateUser(ctx, &CreateUserRequest{Username: "x", Email: "x@example.com", Password: "secret1", Role: "owner"}, "admin")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.CreateUser(ctx, &CreateUserRequest{Username: "bo2", Email: "bo@example.com", Password: "secret1"}, "admin")
	assert.ErrorIs(t, err, ErrEmailExists)

	updated, err := svc.UpdateUser(ctx, u.ID, &UpdateUserRequest{Username: "bob", Email: "bo@example.com", Role: model.RoleManager}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "bob", updated.Username)
	assert.Equal(t, model.RoleManager, updated.Role)

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("secret1"), "blank password keeps the current one")

	_, err = svc.UpdateUser(ctx, u.ID, &UpdateUserRequest{Username: "bob", Email: "bo@example.com", Password: "newsecret"}, "admin")
	require.NoError(t, err)
	stored, err = users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("newsecret"))

	assert.ErrorIs(t, svc.DeleteUser(ctx, u.ID, u.ID.String()), ErrSelfDelete)
	require.NoError(t, svc.DeleteUser(ctx, u.ID, uuid.NewString()))

	_, err = svc.GetUserByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
