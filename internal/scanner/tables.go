package scanner

// Lookup tables used by the detectors. They are ordered where first-match
// semantics apply and are never mutated after init.

// association pairs a file name, dependency name, or prefix with the label
// it implies.
type association struct {
	key   string
	label string
}

// languageIndicators maps manifest files to languages. Order decides the
// primary language.
var languageIndicators = []association{
	{"package.json", "JavaScript/TypeScript"},
	{"pyproject.toml", "Python"},
	{"setup.py", "Python"},
	{"requirements.txt", "Python"},
	{"Cargo.toml", "Rust"},
	{"go.mod", "Go"},
	{"Gemfile", "Ruby"},
	{"build.gradle", "Java/Kotlin"},
	{"pom.xml", "Java"},
	{"mix.exs", "Elixir"},
	{"Package.swift", "Swift"},
	{"composer.json", "PHP"},
	{"index.html", "HTML/CSS"},
}

const (
	jsLanguage = "JavaScript/TypeScript"
	tsLanguage = "TypeScript"
	tsConfig   = "tsconfig.json"
)

// sourceExtensions are the file extensions counted by the TODO/LOC walk.
var sourceExtensions = map[string]bool{
	".py": true, ".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".rs": true, ".go": true, ".rb": true, ".java": true, ".kt": true,
	".ex": true, ".exs": true, ".swift": true, ".php": true,
	".c": true, ".cpp": true, ".h": true,
}

// skipWalkDirs are directory names never descended into by the walk.
var skipWalkDirs = map[string]bool{
	"node_modules": true, ".venv": true, ".git": true, "__pycache__": true,
	"dist": true, "build": true, ".next": true, "target": true,
	".tox": true, "venv": true, "env": true,
}

var testDirs = []string{"tests", "test", "__tests__", "spec", "src/tests", "src/__tests__"}

var readmeFiles = []string{"README.md", "readme.md"}

var licenseFiles = []string{"LICENSE", "LICENSE.md"}

var composeFiles = []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml"}

var linterFiles = []string{
	".eslintrc", ".eslintrc.js", ".eslintrc.json", ".eslintrc.yml",
	"eslint.config.js", "eslint.config.mjs", "eslint.config.ts",
	".prettierrc", ".prettierrc.js", ".prettierrc.json",
	"biome.json", "biome.jsonc",
	".flake8", ".pylintrc", "pyproject.toml",
	".rubocop.yml", "rustfmt.toml",
	".golangci.yml", ".golangci.yaml",
}

// lockfiles maps lockfiles to package managers. The first present lockfile
// names the package manager.
var lockfiles = []association{
	{"pnpm-lock.yaml", "pnpm"},
	{"package-lock.json", "npm"},
	{"yarn.lock", "yarn"},
	{"bun.lockb", "bun"},
	{"Cargo.lock", "cargo"},
	{"uv.lock", "uv"},
	{"poetry.lock", "poetry"},
	{"Pipfile.lock", "pipenv"},
	{"Gemfile.lock", "bundler"},
	{"composer.lock", "composer"},
}

// ciProviders maps the provider key emitted in facts.cicd to the path that
// indicates it.
var ciProviders = []association{
	{"githubActions", ".github/workflows"},
	{"circleci", ".circleci"},
	{"travis", ".travis.yml"},
	{"gitlabCi", ".gitlab-ci.yml"},
}

var deployTargets = []association{
	{"fly", "fly.toml"},
	{"vercel", "vercel.json"},
	{"netlify", "netlify.toml"},
}

var jsFrameworks = []association{
	{"next", "nextjs"},
	{"react", "react"},
	{"vue", "vue"},
	{"@angular/core", "angular"},
	{"express", "express"},
	{"fastify", "fastify"},
	{"svelte", "svelte"},
	{"nuxt", "nuxt"},
	{"@remix-run/react", "remix"},
	{"gatsby", "gatsby"},
}

var rustFrameworks = []association{
	{"axum", "axum"},
	{"actix-web", "actix"},
	{"rocket", "rocket"},
	{"warp", "warp"},
}

var pythonFrameworks = []association{
	{"fastapi", "fastapi"},
	{"django", "django"},
	{"flask", "flask"},
	{"starlette", "starlette"},
}

// goFrameworks match a required module path exactly or as a path prefix.
var goFrameworks = []association{
	{"github.com/gin-gonic/gin", "gin"},
	{"github.com/labstack/echo", "echo"},
	{"github.com/go-chi/chi", "chi"},
	{"github.com/gofiber/fiber", "fiber"},
	{"github.com/gorilla/mux", "gorilla"},
	{"github.com/charmbracelet/bubbletea", "bubbletea"},
	{"github.com/spf13/cobra", "cobra"},
}

// jsServices match a dependency exactly or as a scope prefix ("@aws-sdk"
// matches "@aws-sdk/client-s3").
var jsServices = []association{
	{"@supabase/supabase-js", "supabase"},
	{"posthog-js", "posthog"},
	{"posthog-node", "posthog"},
	{"stripe", "stripe"},
	{"firebase", "firebase"},
	{"firebase-admin", "firebase"},
	{"@aws-sdk", "aws"},
	{"@prisma/client", "prisma"},
	{"mongoose", "mongodb"},
	{"@sentry", "sentry"},
}

var pythonServices = []association{
	{"supabase", "supabase"},
	{"posthog", "posthog"},
	{"stripe", "stripe"},
	{"firebase-admin", "firebase"},
	{"boto3", "aws"},
	{"botocore", "aws"},
	{"prisma", "prisma"},
	{"pymongo", "mongodb"},
	{"sentry-sdk", "sentry"},
	{"openai", "openai"},
	{"anthropic", "anthropic"},
	{"psycopg", "postgresql"},
	{"psycopg2", "postgresql"},
	{"psycopg2-binary", "postgresql"},
	{"redis", "redis"},
}

var goServices = []association{
	{"github.com/supabase-community/supabase-go", "supabase"},
	{"github.com/posthog/posthog-go", "posthog"},
	{"github.com/stripe/stripe-go", "stripe"},
	{"firebase.google.com/go", "firebase"},
	{"github.com/aws/aws-sdk-go", "aws"},
	{"github.com/aws/aws-sdk-go-v2", "aws"},
	{"go.mongodb.org/mongo-driver", "mongodb"},
	{"github.com/getsentry/sentry-go", "sentry"},
	{"github.com/sashabaranov/go-openai", "openai"},
	{"github.com/openai/openai-go", "openai"},
	{"github.com/anthropics/anthropic-sdk-go", "anthropic"},
	{"github.com/jackc/pgx", "postgresql"},
	{"github.com/lib/pq", "postgresql"},
	{"github.com/redis/go-redis", "redis"},
}

// composeImages maps the final path segment of a compose service image to a
// service name.
var composeImages = []association{
	{"postgres", "postgresql"},
	{"postgis", "postgresql"},
	{"redis", "redis"},
	{"mysql", "mysql"},
	{"mariadb", "mysql"},
	{"mongo", "mongodb"},
	{"rabbitmq", "rabbitmq"},
	{"elasticsearch", "elasticsearch"},
	{"memcached", "memcached"},
	{"minio", "minio"},
}

var envFiles = []string{".env", ".env.local", ".env.development"}

// envKeyPrefixes map environment variable names to services. Only keys are
// ever inspected.
var envKeyPrefixes = []association{
	{"SUPABASE_", "supabase"},
	{"POSTHOG_", "posthog"},
	{"NEXT_PUBLIC_POSTHOG", "posthog"},
	{"STRIPE_", "stripe"},
	{"FIREBASE_", "firebase"},
	{"AWS_", "aws"},
	{"DATABASE_URL", "database"},
	{"SENTRY_", "sentry"},
	{"OPENAI_", "openai"},
	{"ANTHROPIC_", "anthropic"},
}
