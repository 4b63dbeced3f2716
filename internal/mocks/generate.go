package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/tournament --output domain/tournament --outpkg tournamentmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/organizer --output domain/organizer --outpkg organizermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../domain/draft --output domain/draft --outpkg draftmock --filename store_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Relay --dir ../domain/submission --output domain/submission --outpkg submissionmock --filename relay_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Uploader --dir ../domain/media --output domain/media --outpkg mediamock --filename uploader_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Authenticator --dir ../domain/user --output domain/user --outpkg usermock --filename authenticator_mock.go
