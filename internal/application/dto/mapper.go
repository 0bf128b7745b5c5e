package dto

import "github.com/jhoicas/almacen-kardex/internal/domain/entity"

// FromProduct mapea la entidad a su respuesta.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		UnitID:    p.UnitID,
		GroupID:   p.GroupID,
		MinStock:  p.MinStock,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromMovement mapea la entidad a su respuesta (fecha de negocio como YYYY-MM-DD).
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Description: m.Description,
		Date:        m.Date.Format(entity.DateLayout),
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// FromMovements mapea una lista conservando el orden.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromUnit mapea la entidad a su respuesta.
func FromUnit(u *entity.Unit) UnitResponse {
	return UnitResponse{
		ID:           u.ID,
		Name:         u.Name,
		Abbreviation: u.Abbreviation,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
	}
}

// FromGroup mapea la entidad a su respuesta.
func FromGroup(g *entity.Group) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Active:      g.Active,
		CreatedAt:   g.CreatedAt,
	}
}

// FromUser mapea la entidad a su respuesta (sin hash).
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		Role:       string(u.Role),
		Active:     u.Active,
		LastAccess: u.LastAccess,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
