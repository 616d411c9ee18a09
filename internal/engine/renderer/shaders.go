package renderer

// Shadow depth pass: position only, depth written by the rasterizer.
const depthVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uLightViewProj;
uniform mat4 uModel;

void main() {
	gl_Position = uLightViewProj * uModel * vec4(aPos, 1.0);
}
`

const depthFragmentSrc = `
#version 410 core

void main() {
}
`

const colorVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 uProj;
uniform mat4 uView;
uniform mat4 uModel;

out vec3 vNormal;
out vec3 vColor;
out vec3 vWorldPos;
out float vViewDepth;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vec4 view = uView * world;

	vWorldPos = world.xyz;
	vViewDepth = -view.z;
	vNormal = mat3(uModel) * aNormal;
	vColor = aColor;

	gl_Position = uProj * view;
}
`

// Color pass with cascade selection. The cascade index is chosen from
// linear view depth; intervals are half-open with the last cascade
// open-ended, so every fragment maps to exactly one cascade. Samplers
// require constant indexing in GLSL 4.1, hence the chain in
// sampleCascade.
const colorFragmentSrc = `
#version 410 core

#define NUM_CASCADES 4

in vec3 vNormal;
in vec3 vColor;
in vec3 vWorldPos;
in float vViewDepth;

uniform mat4 uCascadeVP[NUM_CASCADES];
uniform float uCascadeSplits[NUM_CASCADES];
uniform float uTexelSizes[NUM_CASCADES];
uniform int uCascadeCount;
uniform float uCameraNear;
uniform float uShadowFar;

uniform vec3 uLightDir;
uniform float uLightIntensity;
uniform vec3 uAmbient;
uniform vec3 uSunColor;

uniform sampler2DShadow uShadowMap0;
uniform sampler2DShadow uShadowMap1;
uniform sampler2DShadow uShadowMap2;
uniform sampler2DShadow uShadowMap3;

out vec4 FragColor;

float sampleCascade(int ci) {
	vec4 lp = uCascadeVP[ci] * vec4(vWorldPos, 1.0);
	vec3 ndc = lp.xyz / lp.w * 0.5 + 0.5;
	if (ndc.z > 1.0) {
		return 1.0;
	}

	// Acne scales with the world size of one shadow texel, so coarser
	// cascades get more depth bias.
	float bias = clamp(0.002 * uTexelSizes[ci], 0.0005, 0.005);
	vec3 coord = vec3(ndc.xy, ndc.z - bias);
	if (ci == 0) return texture(uShadowMap0, coord);
	if (ci == 1) return texture(uShadowMap1, coord);
	if (ci == 2) return texture(uShadowMap2, coord);
	return texture(uShadowMap3, coord);
}

void main() {
	float linearDepth = (vViewDepth - uCameraNear) / (uShadowFar - uCameraNear);

	int ci = uCascadeCount - 1;
	for (int i = 0; i < uCascadeCount - 1; ++i) {
		if (linearDepth < uCascadeSplits[i]) {
			ci = i;
			break;
		}
	}

	float lit = sampleCascade(ci);

	vec3 n = normalize(vNormal);
	float ndl = max(dot(n, -uLightDir), 0.0);
	vec3 color = vColor * (uAmbient + uSunColor * uLightIntensity * ndl * lit);

	FragColor = vec4(color, 1.0);
}
`
