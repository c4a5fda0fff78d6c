package graphql

// Operation names as they appear in the documents below. The development
// API dispatches on them.
const (
	OpGetCurrentUser        = "GetCurrentUser"
	OpLogin                 = "Login"
	OpRegister              = "Register"
	OpVerifyEmail           = "VerifyEmail"
	OpSendVerificationEmail = "SendVerificationEmail"
	OpGetArticles           = "GetArticles"
	OpGetArticle            = "GetArticle"
	OpGetUserProfile        = "GetUserProfile"
	OpGetDashboardStats     = "GetDashboardStats"
	OpUpdatePreferences     = "UpdatePreferences"
	OpSaveArticle           = "SaveArticle"
	OpMarkArticleRead       = "MarkArticleRead"
)

const userFields = `
    id
    email
    name
    isEmailVerified
    preferences {
      topics
      sources
      keywords
      excludeKeywords
    }`

const articleFields = `
    id
    title
    source
    author
    publishedAt
    url
    urlToImage
    description
    content
    summary
    sentiment
    sentimentExplanation
    topics
    isRead
    isSaved`

const (
	getCurrentUserQuery = `query GetCurrentUser {
  getCurrentUser {` + userFields + `
  }
}`

	loginMutation = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    token
    user {` + userFields + `
    }
  }
}`

	registerMutation = `mutation Register($email: String!, $password: String!, $name: String!) {
  register(email: $email, password: $password, name: $name) {
    success
    message
  }
}`

	verifyEmailMutation = `mutation VerifyEmail($token: String!) {
  verifyEmail(token: $token) {
    success
    message
  }
}`

	sendVerificationEmailMutation = `mutation SendVerificationEmail($email: String!) {
  sendVerificationEmail(email: $email) {
    success
    message
  }
}`

	getArticlesQuery = `query GetArticles {
  articles {` + articleFields + `
  }
}`

	getArticleQuery = `query GetArticle($id: ID!) {
  article(id: $id) {` + articleFields + `
  }
}`

	getUserProfileQuery = `query GetUserProfile {
  getUserProfile {` + userFields + `
  }
}`

	getDashboardStatsQuery = `query GetDashboardStats {
  dashboardStats {
    totalArticles
    readArticles
    savedArticles
    sentimentBreakdown {
      positive
      neutral
      negative
    }
  }
}`

	updatePreferencesMutation = `mutation UpdatePreferences($preferences: PreferencesInput!) {
  updatePreferences(preferences: $preferences) {` + userFields + `
  }
}`

	saveArticleMutation = `mutation SaveArticle($id: ID!, $saved: Boolean!) {
  saveArticle(id: $id, saved: $saved) {
    success
    message
  }
}`

	markArticleReadMutation = `mutation MarkArticleRead($id: ID!) {
  markArticleRead(id: $id) {
    success
    message
  }
}`
)
