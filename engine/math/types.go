package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief A quaternion, used to represent rotational orientation. */
type Quaternion Vec4

/** @brief a 4x4 matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the transform of an object in the world.
 * Translation, rotation and scale are kept separate so the editor
 * can expose them as individually editable fields; the local matrix
 * is rebuilt lazily when any of them changes.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The rotation in the world as Euler angles (radians). */
	Rotation Vec3
	/** @brief The scale in the world. */
	Scale Vec3
	/** @brief Indicates that the local matrix needs to be recalculated. */
	IsDirty bool
	/** @brief The cached local transformation matrix. */
	Local Mat4
}
