package math

func TransformCreate() *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(NewVec3Zero(), NewVec3Zero(), NewVec3One())
	t.Local = NewMat4Identity()
	return t
}

func TransformFromPosition(position Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, NewVec3Zero(), NewVec3One())
	t.Local = NewMat4Identity()
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) Rotate(rotation Vec3) {
	t.Rotation = t.Rotation.Add(rotation)
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal rebuilds the local matrix if any component changed since the last call.
// Composition order is translation * rotX * rotY * rotZ * scale.
func (t *Transform) GetLocal() Mat4 {
	if t.IsDirty {
		local := NewMat4Translation(t.Position)
		local = local.Mul(NewMat4EulerX(t.Rotation.X))
		local = local.Mul(NewMat4EulerY(t.Rotation.Y))
		local = local.Mul(NewMat4EulerZ(t.Rotation.Z))
		local = local.Mul(NewMat4Scale(t.Scale))
		t.Local = local
		t.IsDirty = false
	}
	return t.Local
}
