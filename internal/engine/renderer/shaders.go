package renderer

const colorVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uMVP;

out vec4 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const colorFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

const sphereVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aPos;
}
`

const sphereFragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec4 uColor;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), uLightDir), 0.0);
	FragColor = vec4(uColor.rgb * (0.35 + 0.65 * diffuse), uColor.a);
}
`

const imageVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

uniform mat4 uProjection;

out vec2 vTexCoord;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vTexCoord = aTexCoord;
}
`

const imageFragmentShader = `
#version 410 core

in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform float uAlpha;

out vec4 FragColor;

void main() {
	vec4 texel = texture(uTexture, vTexCoord);
	FragColor = vec4(texel.rgb, texel.a * uAlpha);
}
`
