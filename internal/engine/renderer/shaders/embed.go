// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GridVertexShader is the vertex shader for unlit line geometry.
//
//go:embed grid.vert
var GridVertexShader string

// GridFragmentShader is the fragment shader for unlit line geometry.
//
//go:embed grid.frag
var GridFragmentShader string

// ObjectVertexShader is the vertex shader for shaded scene objects.
//
//go:embed object.vert
var ObjectVertexShader string

// ObjectFragmentShader is the fragment shader for shaded scene objects.
//
//go:embed object.frag
var ObjectFragmentShader string
