// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

// DefaultCatalog returns the catalog installed when no catalog file exists.
func DefaultCatalog() *Node {
	return Nested(
		Child{Name: "tech", Node: Nested(
			Child{Name: "frontend", Node: Flat(
				"What's new in React 18",
				"Vue 3 Composition API best practices",
				"Advanced TypeScript type tricks",
				"Tuning a Webpack 5 configuration",
				"Comparing CSS-in-JS solutions",
				"Web Components in practice",
				"A complete guide to building PWAs",
				"Designing and implementing micro-frontends",
				"A deep dive into Vite",
				"Hands-on with Next.js 13",
			)},
			Child{Name: "backend", Node: Flat(
				"Node.js performance tuning in practice",
				"Express.js middleware design patterns",
				"GraphQL API design best practices",
				"Containerized deployment with Docker",
				"Redis caching strategies",
				"MongoDB data modeling techniques",
				"JWT authentication and authorization",
				"Designing serverless architectures",
				"API gateway design patterns",
				"Governing microservices in practice",
			)},
			Child{Name: "ai", Node: Flat(
				"Integrating the ChatGPT API",
				"Deploying machine learning models",
				"How transformer models work",
				"Comparing AI code generation tools",
				"A hands-on NLP project",
				"Building computer vision applications",
				"In-browser AI with TensorFlow.js",
				"AI ethics and safety considerations",
				"Prompt engineering techniques",
				"AI-assisted software development",
			)},
			Child{Name: "devops", Node: Flat(
				"Designing CI/CD pipelines",
				"Managing Kubernetes clusters",
				"Building a monitoring stack",
				"Container security best practices",
				"Infrastructure as code in practice",
				"Log management and analysis",
				"Performance testing and tuning",
				"Automated deployment strategies",
				"Cloud-native application development",
				"Designing disaster recovery plans",
			)},
		)},
		Child{Name: "tutorials", Node: Nested(
			Child{Name: "beginner", Node: Flat(
				"Getting started with Git",
				"A guide to semantic HTML5 elements",
				"CSS Flexbox layout tutorial",
				"JavaScript syntax fundamentals",
				"HTTP protocol basics",
				"Introduction to SQL queries",
				"Linux command line basics",
				"Calling your first API",
				"Understanding the JSON format",
				"Web security fundamentals",
			)},
			Child{Name: "intermediate", Node: Flat(
				"Building an app with React Hooks",
				"Structuring a Node.js project",
				"RESTful API design conventions",
				"Optimizing webpack bundles",
				"Using CSS preprocessors",
				"Unit testing with Jest",
				"Real-time messaging with Socket.io",
				"Routing design in Express.js",
				"MongoDB aggregation queries",
				"Applying Redis data structures",
			)},
			Child{Name: "advanced", Node: Flat(
				"Design patterns in frontend code",
				"Principles of distributed system design",
				"Architecting for high concurrency",
				"Performance monitoring and tuning",
				"Code quality and refactoring techniques",
				"Choosing an architecture pattern",
				"Designing a caching strategy",
				"Database optimization techniques",
				"Security hardening best practices",
				"Choosing team collaboration tools",
			)},
		)},
		Child{Name: "trending", Node: Flat(
			"Getting started with Web3 development",
			"Building ChatGPT plugins",
			"A learning path for Rust",
			"Exploring the Deno runtime",
			"WebAssembly in practice",
			"Cross-platform apps with Flutter",
			"Interface design with SwiftUI",
			"Kotlin coroutines",
			"Microservices in Go",
			"Data analysis with Python",
		)},
	)
}
